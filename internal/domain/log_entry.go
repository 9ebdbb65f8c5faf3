package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealLog records one consumption of a catalog meal. Immutable once saved.
type MealLog struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ProfileID    primitive.ObjectID  `bson:"profileId" json:"profileId"`
	MealID       primitive.ObjectID  `bson:"mealId" json:"mealId"`
	MealName     string              `bson:"mealName" json:"mealName"`
	MealType     MealType            `bson:"mealType" json:"mealType"`
	Servings     float64             `bson:"servings" json:"servings"`
	ConsumedAt   time.Time           `bson:"consumedAt" json:"consumedAt"`
	Calories     float64             `bson:"calories" json:"calories"` // Derived at save time
	AssignmentID *primitive.ObjectID `bson:"assignmentId,omitempty" json:"assignmentId,omitempty"`
	Notes        string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
}

// NewMealLog derives calories from the meal and the servings eaten.
// The meal type defaults to the meal's own type.
func NewMealLog(profileID primitive.ObjectID, meal *Meal, mealType MealType, servings float64, consumedAt time.Time) *MealLog {
	if mealType == "" {
		mealType = meal.Type
	}
	return &MealLog{
		ProfileID:  profileID,
		MealID:     meal.ID,
		MealName:   meal.Name,
		MealType:   mealType,
		Servings:   servings,
		ConsumedAt: consumedAt.UTC(),
		Calories:   meal.Nutrition.Calories * servings,
	}
}

// ExerciseLog records one training session of a catalog exercise.
type ExerciseLog struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ProfileID       primitive.ObjectID  `bson:"profileId" json:"profileId"`
	ExerciseID      primitive.ObjectID  `bson:"exerciseId" json:"exerciseId"`
	ExerciseName    string              `bson:"exerciseName" json:"exerciseName"`
	DurationMinutes int                 `bson:"durationMinutes" json:"durationMinutes"`
	PerformedAt     time.Time           `bson:"performedAt" json:"performedAt"`
	Calories        float64             `bson:"calories" json:"calories"` // Derived at save time
	AssignmentID    *primitive.ObjectID `bson:"assignmentId,omitempty" json:"assignmentId,omitempty"`
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
}

// NewExerciseLog derives calories from the exercise rate and duration.
func NewExerciseLog(profileID primitive.ObjectID, exercise *Exercise, minutes int, performedAt time.Time) *ExerciseLog {
	return &ExerciseLog{
		ProfileID:       profileID,
		ExerciseID:      exercise.ID,
		ExerciseName:    exercise.Name,
		DurationMinutes: minutes,
		PerformedAt:     performedAt.UTC(),
		Calories:        exercise.CaloriesFor(minutes),
	}
}
