package repository

import (
	"alcyxob/fittrack/internal/domain" // Import our defined domain models
	"context"                          // Standard for request-scoped deadlines, cancellation signals, etc.

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository stores one profile per user.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

// IngredientRepository defines the interface for interacting with ingredient data.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *domain.Ingredient) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Ingredient, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Ingredient, error)
	List(ctx context.Context) ([]domain.Ingredient, error)
	Update(ctx context.Context, ingredient *domain.Ingredient) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MealRepository defines the interface for interacting with meal data.
type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error)
	List(ctx context.Context, mealType domain.MealType) ([]domain.Meal, error) // Empty type lists all
	Update(ctx context.Context, meal *domain.Meal) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context, category string) ([]domain.Exercise, error) // Empty category lists all
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// NutritionPlanRepository defines the interface for interacting with nutrition plan data.
type NutritionPlanRepository interface {
	Create(ctx context.Context, plan *domain.NutritionPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NutritionPlan, error)
	List(ctx context.Context) ([]domain.NutritionPlan, error)
	Update(ctx context.Context, plan *domain.NutritionPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// RoutineRepository defines the interface for interacting with routine data.
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	List(ctx context.Context) ([]domain.Routine, error)
	Update(ctx context.Context, routine *domain.Routine) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AssignmentFilter narrows assignment listings. Zero values match everything.
type AssignmentFilter struct {
	Kind   domain.AssignmentKind
	Status domain.AssignmentStatus
}

// AssignmentRepository defines the interface for interacting with assignment data.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Assignment, error)
	ListByProfile(ctx context.Context, profileID primitive.ObjectID, filter AssignmentFilter) ([]domain.Assignment, error)
	Update(ctx context.Context, assignment *domain.Assignment) error
}

// MealLogRepository stores meal log entries. Entries are never updated.
type MealLogRepository interface {
	Create(ctx context.Context, entry *domain.MealLog) (primitive.ObjectID, error)
	ListByProfile(ctx context.Context, profileID primitive.ObjectID, r domain.DateRange) ([]domain.MealLog, error)
}

// ExerciseLogRepository stores exercise log entries. Entries are never updated.
type ExerciseLogRepository interface {
	Create(ctx context.Context, entry *domain.ExerciseLog) (primitive.ObjectID, error)
	ListByProfile(ctx context.Context, profileID primitive.ObjectID, r domain.DateRange) ([]domain.ExerciseLog, error)
}

// ProgressRepository defines the interface for interacting with body progress entries.
type ProgressRepository interface {
	Create(ctx context.Context, entry *domain.ProgressEntry) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressEntry, error)
	ListByProfile(ctx context.Context, profileID primitive.ObjectID) ([]domain.ProgressEntry, error)
	Update(ctx context.Context, entry *domain.ProgressEntry) error
}
