// internal/domain/nutrition_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NutritionPlan is a catalog diet followed day by day.
type NutritionPlan struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"` // e.g., "Cutting 30 days"
	NameKey       string               `bson:"nameKey" json:"-"`
	Description   string               `bson:"description,omitempty" json:"description,omitempty"`
	DurationDays  int                  `bson:"durationDays" json:"durationDays"`
	DailyCalories float64              `bson:"dailyCalories" json:"dailyCalories"`
	MealIDs       []primitive.ObjectID `bson:"mealIds,omitempty" json:"mealIds,omitempty"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}
