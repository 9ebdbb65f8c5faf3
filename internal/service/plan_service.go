package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NutritionPlanInput carries the editable fields of a nutrition plan.
type NutritionPlanInput struct {
	Name          string
	Description   string
	DurationDays  int
	DailyCalories float64
	MealIDs       []primitive.ObjectID
}

// RoutineInput carries the editable fields of a workout routine.
type RoutineInput struct {
	Name          string
	Description   string
	DurationWeeks int
	Level         string
	ExerciseIDs   []primitive.ObjectID
}

// PlanService manages the nutrition plan and routine catalogs, the items
// a profile can be assigned to.
type PlanService interface {
	CreateNutritionPlan(ctx context.Context, in NutritionPlanInput) (*domain.NutritionPlan, error)
	GetNutritionPlan(ctx context.Context, id primitive.ObjectID) (*domain.NutritionPlan, error)
	ListNutritionPlans(ctx context.Context) ([]domain.NutritionPlan, error)
	UpdateNutritionPlan(ctx context.Context, id primitive.ObjectID, in NutritionPlanInput) (*domain.NutritionPlan, error)
	DeleteNutritionPlan(ctx context.Context, id primitive.ObjectID) error

	CreateRoutine(ctx context.Context, in RoutineInput) (*domain.Routine, error)
	GetRoutine(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	ListRoutines(ctx context.Context) ([]domain.Routine, error)
	UpdateRoutine(ctx context.Context, id primitive.ObjectID, in RoutineInput) (*domain.Routine, error)
	DeleteRoutine(ctx context.Context, id primitive.ObjectID) error
}

type planService struct {
	planRepo     repository.NutritionPlanRepository
	routineRepo  repository.RoutineRepository
	mealRepo     repository.MealRepository
	exerciseRepo repository.ExerciseRepository
}

func NewPlanService(
	planRepo repository.NutritionPlanRepository,
	routineRepo repository.RoutineRepository,
	mealRepo repository.MealRepository,
	exerciseRepo repository.ExerciseRepository,
) PlanService {
	return &planService{
		planRepo:     planRepo,
		routineRepo:  routineRepo,
		mealRepo:     mealRepo,
		exerciseRepo: exerciseRepo,
	}
}

// === Nutrition plans ===

func (s *planService) validatePlan(ctx context.Context, in NutritionPlanInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("plan name is required")
	}
	if in.DurationDays <= 0 {
		return invalid("plan duration must be at least one day")
	}
	if in.DailyCalories < 0 {
		return invalid("daily calories must not be negative")
	}
	for _, mealID := range in.MealIDs {
		if _, err := s.mealRepo.GetByID(ctx, mealID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrMealNotFound
			}
			return err
		}
	}
	return nil
}

func (s *planService) CreateNutritionPlan(ctx context.Context, in NutritionPlanInput) (*domain.NutritionPlan, error) {
	if err := s.validatePlan(ctx, in); err != nil {
		return nil, err
	}
	plan := &domain.NutritionPlan{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		DurationDays:  in.DurationDays,
		DailyCalories: in.DailyCalories,
		MealIDs:       in.MealIDs,
	}

	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

func (s *planService) GetNutritionPlan(ctx context.Context, id primitive.ObjectID) (*domain.NutritionPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNutritionPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) ListNutritionPlans(ctx context.Context) ([]domain.NutritionPlan, error) {
	return s.planRepo.List(ctx)
}

// UpdateNutritionPlan edits the catalog entry. Running assignments keep the
// duration they copied at assignment time.
func (s *planService) UpdateNutritionPlan(ctx context.Context, id primitive.ObjectID, in NutritionPlanInput) (*domain.NutritionPlan, error) {
	if err := s.validatePlan(ctx, in); err != nil {
		return nil, err
	}
	plan, err := s.GetNutritionPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	plan.Name = strings.TrimSpace(in.Name)
	plan.Description = in.Description
	plan.DurationDays = in.DurationDays
	plan.DailyCalories = in.DailyCalories
	plan.MealIDs = in.MealIDs
	if err := s.planRepo.Update(ctx, plan); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNutritionPlanNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) DeleteNutritionPlan(ctx context.Context, id primitive.ObjectID) error {
	if err := s.planRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNutritionPlanNotFound
		}
		return err
	}
	return nil
}

// === Routines ===

func (s *planService) validateRoutine(ctx context.Context, in RoutineInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("routine name is required")
	}
	if in.DurationWeeks <= 0 {
		return invalid("routine duration must be at least one week")
	}
	for _, exerciseID := range in.ExerciseIDs {
		if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrExerciseNotFound
			}
			return err
		}
	}
	return nil
}

func (s *planService) CreateRoutine(ctx context.Context, in RoutineInput) (*domain.Routine, error) {
	if err := s.validateRoutine(ctx, in); err != nil {
		return nil, err
	}
	routine := &domain.Routine{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		DurationWeeks: in.DurationWeeks,
		Level:         in.Level,
		ExerciseIDs:   in.ExerciseIDs,
	}

	id, err := s.routineRepo.Create(ctx, routine)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	routine.ID = id
	return routine, nil
}

func (s *planService) GetRoutine(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	routine, err := s.routineRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return routine, nil
}

func (s *planService) ListRoutines(ctx context.Context) ([]domain.Routine, error) {
	return s.routineRepo.List(ctx)
}

func (s *planService) UpdateRoutine(ctx context.Context, id primitive.ObjectID, in RoutineInput) (*domain.Routine, error) {
	if err := s.validateRoutine(ctx, in); err != nil {
		return nil, err
	}
	routine, err := s.GetRoutine(ctx, id)
	if err != nil {
		return nil, err
	}

	routine.Name = strings.TrimSpace(in.Name)
	routine.Description = in.Description
	routine.DurationWeeks = in.DurationWeeks
	routine.Level = in.Level
	routine.ExerciseIDs = in.ExerciseIDs
	if err := s.routineRepo.Update(ctx, routine); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrRoutineNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return routine, nil
}

func (s *planService) DeleteRoutine(ctx context.Context, id primitive.ObjectID) error {
	if err := s.routineRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoutineNotFound
		}
		return err
	}
	return nil
}
