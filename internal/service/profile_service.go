package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileInput carries the editable body data of a profile.
type ProfileInput struct {
	BirthDate     *time.Time
	Sex           domain.Sex
	HeightCm      float64
	WeightKg      float64
	ActivityLevel domain.ActivityLevel
	Goal          domain.Goal
	DailyCalories float64 // 0 means estimate from the body data
}

type ProfileService interface {
	CreateProfile(ctx context.Context, userID primitive.ObjectID, in ProfileInput) (*domain.Profile, error)
	GetMyProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	UpdateMyProfile(ctx context.Context, userID primitive.ObjectID, in ProfileInput) (*domain.Profile, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

func (s *profileService) CreateProfile(ctx context.Context, userID primitive.ObjectID, in ProfileInput) (*domain.Profile, error) {
	if err := validateProfileInput(in); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	_, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return nil, ErrProfileExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	profile := &domain.Profile{UserID: userID}
	s.apply(profile, in)

	id, err := s.profileRepo.Create(ctx, profile)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProfileExists
		}
		return nil, err
	}
	profile.ID = id
	return profile, nil
}

func (s *profileService) GetMyProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	return profileOf(ctx, s.profileRepo, userID)
}

func (s *profileService) UpdateMyProfile(ctx context.Context, userID primitive.ObjectID, in ProfileInput) (*domain.Profile, error) {
	if err := validateProfileInput(in); err != nil {
		return nil, err
	}
	profile, err := profileOf(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	s.apply(profile, in)
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) apply(p *domain.Profile, in ProfileInput) {
	p.BirthDate = in.BirthDate
	p.Sex = in.Sex
	p.HeightCm = in.HeightCm
	p.WeightKg = in.WeightKg
	p.ActivityLevel = in.ActivityLevel
	p.Goal = in.Goal
	p.DailyCalories = in.DailyCalories
	if p.DailyCalories == 0 {
		p.DailyCalories = p.EstimateDailyCalories(s.now())
	}
}

func validateProfileInput(in ProfileInput) error {
	if in.HeightCm < 0 || in.WeightKg < 0 || in.DailyCalories < 0 {
		return invalid("height, weight and daily calories must not be negative")
	}
	if in.Sex != "" && !in.Sex.Valid() {
		return invalid("unknown sex %q", in.Sex)
	}
	if in.Goal != "" && !in.Goal.Valid() {
		return invalid("unknown goal %q", in.Goal)
	}
	if in.ActivityLevel != "" && !in.ActivityLevel.Valid() {
		return invalid("unknown activity level %q", in.ActivityLevel)
	}
	return nil
}

// profileOf resolves the profile owned by a user.
func profileOf(ctx context.Context, repo repository.ProfileRepository, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
