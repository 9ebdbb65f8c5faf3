// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise represents a single exercise definition in the catalog.
type Exercise struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	NameKey           string             `bson:"nameKey" json:"-"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Category          string             `bson:"category,omitempty" json:"category,omitempty"`       // e.g., "cardio", "strength", "flexibility"
	MuscleGroup       string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g., "Chest", "Legs", "Back"
	CaloriesPerMinute float64            `bson:"caloriesPerMinute" json:"caloriesPerMinute"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CaloriesFor returns the energy burned over the given minutes.
func (e *Exercise) CaloriesFor(minutes int) float64 {
	return e.CaloriesPerMinute * float64(minutes)
}
