package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routine is a catalog training program followed week by week.
type Routine struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"` // e.g., "Full body beginner"
	NameKey       string               `bson:"nameKey" json:"-"`
	Description   string               `bson:"description,omitempty" json:"description,omitempty"`
	DurationWeeks int                  `bson:"durationWeeks" json:"durationWeeks"`
	Level         string               `bson:"level,omitempty" json:"level,omitempty"` // e.g., "Novice", "Medium", "Advanced"
	ExerciseIDs   []primitive.ObjectID `bson:"exerciseIds,omitempty" json:"exerciseIds,omitempty"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}
