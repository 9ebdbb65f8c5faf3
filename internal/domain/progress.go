package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressEntry is a body measurement at a point in time. The optional
// photo resides in object storage.
type ProgressEntry struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfileID      primitive.ObjectID `bson:"profileId" json:"profileId"`
	RecordedAt     time.Time          `bson:"recordedAt" json:"recordedAt"`
	WeightKg       float64            `bson:"weightKg" json:"weightKg"`
	BodyFatPercent *float64           `bson:"bodyFatPercent,omitempty" json:"bodyFatPercent,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	PhotoKey       string             `bson:"photoKey,omitempty" json:"-"` // Object key in the bucket, internal use
	PhotoType      string             `bson:"photoType,omitempty" json:"photoType,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p *ProgressEntry) HasPhoto() bool {
	return p.PhotoKey != ""
}
