package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxSummaryDays bounds the per-day summary.
const maxSummaryDays = 366

// MealLogInput describes one eaten meal. Zero ConsumedAt means now.
type MealLogInput struct {
	MealID       primitive.ObjectID
	MealType     domain.MealType // Empty means the meal's own type
	Servings     float64
	ConsumedAt   time.Time
	AssignmentID *primitive.ObjectID
	Notes        string
}

// ExerciseLogInput describes one training session. Zero PerformedAt means now.
type ExerciseLogInput struct {
	ExerciseID      primitive.ObjectID
	DurationMinutes int
	PerformedAt     time.Time
	AssignmentID    *primitive.ObjectID
	Notes           string
}

// CalorieTotals is the energy balance over a date range.
type CalorieTotals struct {
	Range    domain.DateRange `json:"range"`
	Consumed float64          `json:"consumed"`
	Burned   float64          `json:"burned"`
	Net      float64          `json:"net"`
}

// CategoryStats groups log entries of a date range.
type CategoryStats struct {
	Range        domain.DateRange      `json:"range"`
	Meals        []domain.CategoryStat `json:"meals"`     // By meal type
	Exercises    []domain.CategoryStat `json:"exercises"` // By exercise
	TotalEntries int                   `json:"totalEntries"`
}

// TrackingService records meals and exercises and summarizes them.
type TrackingService interface {
	LogMeal(ctx context.Context, userID primitive.ObjectID, in MealLogInput) (*domain.MealLog, error)
	LogExercise(ctx context.Context, userID primitive.ObjectID, in ExerciseLogInput) (*domain.ExerciseLog, error)
	ListMealLogs(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.MealLog, error)
	ListExerciseLogs(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.ExerciseLog, error)
	SumCalories(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (*CalorieTotals, error)
	StatsByCategory(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (*CategoryStats, error)
	DailySummary(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.DailySummary, error)
}

type trackingService struct {
	profileRepo     repository.ProfileRepository
	mealRepo        repository.MealRepository
	exerciseRepo    repository.ExerciseRepository
	assignmentRepo  repository.AssignmentRepository
	mealLogRepo     repository.MealLogRepository
	exerciseLogRepo repository.ExerciseLogRepository
	now             func() time.Time
}

func NewTrackingService(
	profileRepo repository.ProfileRepository,
	mealRepo repository.MealRepository,
	exerciseRepo repository.ExerciseRepository,
	assignmentRepo repository.AssignmentRepository,
	mealLogRepo repository.MealLogRepository,
	exerciseLogRepo repository.ExerciseLogRepository,
) TrackingService {
	return &trackingService{
		profileRepo:     profileRepo,
		mealRepo:        mealRepo,
		exerciseRepo:    exerciseRepo,
		assignmentRepo:  assignmentRepo,
		mealLogRepo:     mealLogRepo,
		exerciseLogRepo: exerciseLogRepo,
		now:             time.Now,
	}
}

func dateRange(from, to time.Time) (domain.DateRange, error) {
	r, err := domain.NewDateRange(from, to)
	if err != nil {
		return domain.DateRange{}, invalid("%s", err.Error())
	}
	return r, nil
}

// linkAssignment checks that an optional assignment reference belongs to
// the profile and points into the right catalog.
func (s *trackingService) linkAssignment(ctx context.Context, profileID primitive.ObjectID, assignmentID *primitive.ObjectID, kind domain.AssignmentKind) error {
	if assignmentID == nil {
		return nil
	}
	assignment, err := ownedAssignment(ctx, s.assignmentRepo, profileID, *assignmentID)
	if err != nil {
		return err
	}
	if assignment.Kind != kind {
		return invalid("assignment %s is a %s, expected a %s", assignmentID.Hex(), assignment.Kind, kind)
	}
	return nil
}

// LogMeal stores a meal entry. Calories are fixed at this point from the
// meal's current nutrition.
func (s *trackingService) LogMeal(ctx context.Context, userID primitive.ObjectID, in MealLogInput) (*domain.MealLog, error) {
	if in.Servings <= 0 {
		return nil, invalid("servings must be positive")
	}
	if in.MealType != "" && !in.MealType.Valid() {
		return nil, invalid("unknown meal type %q", in.MealType)
	}
	profile, err := profileOf(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	meal, err := s.mealRepo.GetByID(ctx, in.MealID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	if err := s.linkAssignment(ctx, profile.ID, in.AssignmentID, domain.KindPlan); err != nil {
		return nil, err
	}

	consumedAt := in.ConsumedAt
	if consumedAt.IsZero() {
		consumedAt = s.now()
	}
	entry := domain.NewMealLog(profile.ID, meal, in.MealType, in.Servings, consumedAt)
	entry.AssignmentID = in.AssignmentID
	entry.Notes = in.Notes

	id, err := s.mealLogRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

// LogExercise stores a training entry with calories from the exercise rate.
func (s *trackingService) LogExercise(ctx context.Context, userID primitive.ObjectID, in ExerciseLogInput) (*domain.ExerciseLog, error) {
	if in.DurationMinutes <= 0 {
		return nil, invalid("duration must be positive")
	}
	profile, err := profileOf(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, in.ExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if err := s.linkAssignment(ctx, profile.ID, in.AssignmentID, domain.KindRoutine); err != nil {
		return nil, err
	}

	performedAt := in.PerformedAt
	if performedAt.IsZero() {
		performedAt = s.now()
	}
	entry := domain.NewExerciseLog(profile.ID, exercise, in.DurationMinutes, performedAt)
	entry.AssignmentID = in.AssignmentID
	entry.Notes = in.Notes

	id, err := s.exerciseLogRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

func (s *trackingService) ListMealLogs(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.MealLog, error) {
	r, err := dateRange(from, to)
	if err != nil {
		return nil, err
	}
	profile, err := profileOf(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return s.mealLogRepo.ListByProfile(ctx, profile.ID, r)
}

func (s *trackingService) ListExerciseLogs(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.ExerciseLog, error) {
	r, err := dateRange(from, to)
	if err != nil {
		return nil, err
	}
	profile, err := profileOf(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return s.exerciseLogRepo.ListByProfile(ctx, profile.ID, r)
}

// logsIn loads both kinds of entries of the user's profile inside r.
func (s *trackingService) logsIn(ctx context.Context, userID primitive.ObjectID, r domain.DateRange) (*domain.Profile, []domain.MealLog, []domain.ExerciseLog, error) {
	profile, err := profileOf(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	meals, err := s.mealLogRepo.ListByProfile(ctx, profile.ID, r)
	if err != nil {
		return nil, nil, nil, err
	}
	exercises, err := s.exerciseLogRepo.ListByProfile(ctx, profile.ID, r)
	if err != nil {
		return nil, nil, nil, err
	}
	return profile, meals, exercises, nil
}

// SumCalories totals consumed and burned calories. An empty range sums to zero.
func (s *trackingService) SumCalories(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (*CalorieTotals, error) {
	r, err := dateRange(from, to)
	if err != nil {
		return nil, err
	}
	_, meals, exercises, err := s.logsIn(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	totals := &CalorieTotals{
		Range:    r,
		Consumed: domain.SumMealCalories(meals, r),
		Burned:   domain.SumExerciseCalories(exercises, r),
	}
	totals.Net = totals.Consumed - totals.Burned
	return totals, nil
}

func (s *trackingService) StatsByCategory(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (*CategoryStats, error) {
	r, err := dateRange(from, to)
	if err != nil {
		return nil, err
	}
	_, meals, exercises, err := s.logsIn(ctx, userID, r)
	if err != nil {
		return nil, err
	}

	stats := &CategoryStats{
		Range:     r,
		Meals:     domain.MealStatsByType(meals, r),
		Exercises: domain.ExerciseStatsByExercise(exercises, r),
	}
	for _, l := range meals {
		if r.Contains(l.ConsumedAt) {
			stats.TotalEntries++
		}
	}
	for _, l := range exercises {
		if r.Contains(l.PerformedAt) {
			stats.TotalEntries++
		}
	}
	return stats, nil
}

// DailySummary compares each day of the range against the profile target.
func (s *trackingService) DailySummary(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.DailySummary, error) {
	r, err := dateRange(from, to)
	if err != nil {
		return nil, err
	}
	if r.SpansMoreThan(maxSummaryDays) {
		return nil, invalid("summary range can span at most %d days", maxSummaryDays)
	}
	profile, meals, exercises, err := s.logsIn(ctx, userID, r)
	if err != nil {
		return nil, err
	}
	return domain.DailySummaries(meals, exercises, r, profile.DailyCalories), nil
}
