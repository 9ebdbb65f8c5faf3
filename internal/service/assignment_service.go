package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentService tracks the plans and routines a profile follows.
// Every method acts on the profile of the calling user.
type AssignmentService interface {
	Assign(ctx context.Context, userID primitive.ObjectID, kind domain.AssignmentKind, itemID primitive.ObjectID, start time.Time) (*domain.Assignment, error)
	Advance(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error)
	Complete(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error)
	Cancel(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error)
	Pause(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error)
	Resume(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error)
	GetAssignment(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error)
	ListAssignments(ctx context.Context, userID primitive.ObjectID, filter repository.AssignmentFilter) ([]domain.Assignment, error)
	GetActive(ctx context.Context, userID primitive.ObjectID, kind domain.AssignmentKind) (*domain.Assignment, error)
}

type assignmentService struct {
	profileRepo    repository.ProfileRepository
	assignmentRepo repository.AssignmentRepository
	planRepo       repository.NutritionPlanRepository
	routineRepo    repository.RoutineRepository
	now            func() time.Time
}

func NewAssignmentService(
	profileRepo repository.ProfileRepository,
	assignmentRepo repository.AssignmentRepository,
	planRepo repository.NutritionPlanRepository,
	routineRepo repository.RoutineRepository,
) AssignmentService {
	return &assignmentService{
		profileRepo:    profileRepo,
		assignmentRepo: assignmentRepo,
		planRepo:       planRepo,
		routineRepo:    routineRepo,
		now:            time.Now,
	}
}

// catalogItem looks up a plan or routine and returns its name and duration.
func (s *assignmentService) catalogItem(ctx context.Context, kind domain.AssignmentKind, itemID primitive.ObjectID) (string, int, error) {
	switch kind {
	case domain.KindPlan:
		plan, err := s.planRepo.GetByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", 0, ErrNutritionPlanNotFound
			}
			return "", 0, err
		}
		return plan.Name, plan.DurationDays, nil
	case domain.KindRoutine:
		routine, err := s.routineRepo.GetByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", 0, ErrRoutineNotFound
			}
			return "", 0, err
		}
		return routine.Name, routine.DurationWeeks, nil
	}
	return "", 0, invalid("unknown assignment kind %q", kind)
}

// checkOverlap fails when another ACTIVE assignment of the same kind shares
// a day with a. The read and the following write are not serialized.
func (s *assignmentService) checkOverlap(ctx context.Context, a *domain.Assignment) error {
	active, err := s.assignmentRepo.ListByProfile(ctx, a.ProfileID, repository.AssignmentFilter{
		Kind:   a.Kind,
		Status: domain.StatusActive,
	})
	if err != nil {
		return err
	}
	want := a.Range()
	for i := range active {
		other := &active[i]
		if other.ID == a.ID {
			continue
		}
		if other.Range().Overlaps(want) {
			return ErrAssignmentOverlap
		}
	}
	return nil
}

// Assign starts a plan or routine for the user's profile. A zero start
// date means today.
func (s *assignmentService) Assign(ctx context.Context, userID primitive.ObjectID, kind domain.AssignmentKind, itemID primitive.ObjectID, start time.Time) (*domain.Assignment, error) {
	if !kind.Valid() {
		return nil, invalid("unknown assignment kind %q", kind)
	}
	profile, err := profileOf(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	name, duration, err := s.catalogItem(ctx, kind, itemID)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, invalid("catalog item has no duration")
	}
	if start.IsZero() {
		start = s.now()
	}

	assignment := domain.NewAssignment(profile.ID, kind, itemID, name, duration, start)
	if err := s.checkOverlap(ctx, assignment); err != nil {
		return nil, err
	}

	id, err := s.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		return nil, err
	}
	assignment.ID = id
	return assignment, nil
}

// owned loads an assignment and checks it belongs to the user's profile.
func (s *assignmentService) owned(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error) {
	profile, err := profileOf(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return ownedAssignment(ctx, s.assignmentRepo, profile.ID, assignmentID)
}

func ownedAssignment(ctx context.Context, repo repository.AssignmentRepository, profileID, assignmentID primitive.ObjectID) (*domain.Assignment, error) {
	assignment, err := repo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	if assignment.ProfileID != profileID {
		return nil, ErrAssignmentAccessDenied
	}
	return assignment, nil
}

func isLifecycleError(err error) bool {
	return errors.Is(err, domain.ErrAssignmentNotActive) ||
		errors.Is(err, domain.ErrAssignmentTerminal) ||
		errors.Is(err, domain.ErrAssignmentNotPaused)
}

// transition applies a state change and persists it only when something
// changed.
func (s *assignmentService) transition(ctx context.Context, userID, assignmentID primitive.ObjectID, apply func(*domain.Assignment) (bool, error)) (*domain.Assignment, error) {
	assignment, err := s.owned(ctx, userID, assignmentID)
	if err != nil {
		return nil, err
	}
	changed, err := apply(assignment)
	if err != nil {
		if isLifecycleError(err) {
			return nil, violation(err)
		}
		return nil, err
	}
	if !changed {
		return assignment, nil
	}
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

// Advance moves to the next day or week. At the last one it does nothing.
func (s *assignmentService) Advance(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error) {
	return s.transition(ctx, userID, assignmentID, func(a *domain.Assignment) (bool, error) {
		return a.Advance()
	})
}

func (s *assignmentService) Complete(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error) {
	return s.transition(ctx, userID, assignmentID, func(a *domain.Assignment) (bool, error) {
		return a.Complete(s.now())
	})
}

func (s *assignmentService) Cancel(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error) {
	return s.transition(ctx, userID, assignmentID, func(a *domain.Assignment) (bool, error) {
		return a.Cancel(s.now())
	})
}

func (s *assignmentService) Pause(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error) {
	return s.transition(ctx, userID, assignmentID, func(a *domain.Assignment) (bool, error) {
		return a.Pause()
	})
}

// Resume reactivates a paused assignment if no other active one of its kind
// overlaps it in the meantime.
func (s *assignmentService) Resume(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error) {
	return s.transition(ctx, userID, assignmentID, func(a *domain.Assignment) (bool, error) {
		if a.Status != domain.StatusPaused {
			return a.Resume()
		}
		if err := s.checkOverlap(ctx, a); err != nil {
			return false, err
		}
		return a.Resume()
	})
}

func (s *assignmentService) GetAssignment(ctx context.Context, userID, assignmentID primitive.ObjectID) (*domain.Assignment, error) {
	return s.owned(ctx, userID, assignmentID)
}

func (s *assignmentService) ListAssignments(ctx context.Context, userID primitive.ObjectID, filter repository.AssignmentFilter) ([]domain.Assignment, error) {
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, invalid("unknown assignment kind %q", filter.Kind)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalid("unknown assignment status %q", filter.Status)
	}
	profile, err := profileOf(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListByProfile(ctx, profile.ID, filter)
}

// GetActive returns the active assignment of a kind whose range covers
// today, or the latest started one when none does.
func (s *assignmentService) GetActive(ctx context.Context, userID primitive.ObjectID, kind domain.AssignmentKind) (*domain.Assignment, error) {
	assignments, err := s.ListAssignments(ctx, userID, repository.AssignmentFilter{Kind: kind, Status: domain.StatusActive})
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, ErrAssignmentNotFound
	}
	today := s.now()
	var latest *domain.Assignment
	for i := range assignments {
		a := &assignments[i]
		if a.Range().Contains(today) {
			return a, nil
		}
		if latest == nil || a.StartDate.After(latest.StartDate) {
			latest = a
		}
	}
	return latest, nil
}
