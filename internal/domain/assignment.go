package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentKind tells which catalog an assignment points into.
type AssignmentKind string

const (
	KindPlan    AssignmentKind = "plan"    // Nutrition plan, position counts days
	KindRoutine AssignmentKind = "routine" // Workout routine, position counts weeks
)

func (k AssignmentKind) Valid() bool {
	return k == KindPlan || k == KindRoutine
}

// AssignmentStatus type for assignment lifecycle
type AssignmentStatus string

const (
	StatusActive    AssignmentStatus = "ACTIVE"
	StatusPaused    AssignmentStatus = "PAUSED"
	StatusCompleted AssignmentStatus = "COMPLETED"
	StatusCancelled AssignmentStatus = "CANCELLED"
)

func (s AssignmentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses can not be left.
func (s AssignmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

var (
	ErrAssignmentNotActive = errors.New("assignment is not active")
	ErrAssignmentTerminal  = errors.New("assignment is already finished")
	ErrAssignmentNotPaused = errors.New("assignment is not paused")
)

// Assignment is a profile following a nutrition plan or a routine.
type Assignment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProfileID     primitive.ObjectID `bson:"profileId" json:"profileId"`
	Kind          AssignmentKind     `bson:"kind" json:"kind"`
	ItemID        primitive.ObjectID `bson:"itemId" json:"itemId"`               // NutritionPlan or Routine
	ItemName      string             `bson:"itemName" json:"itemName"`           // Denormalized for listings
	TotalDuration int                `bson:"totalDuration" json:"totalDuration"` // Days for plans, weeks for routines
	StartDate     time.Time          `bson:"startDate" json:"startDate"`
	EndDate       *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"` // Stamped on completion or cancellation
	Position      int                `bson:"position" json:"position"`                   // Current day or week, 1-based
	Status        AssignmentStatus   `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewAssignment starts a catalog item for a profile at position 1.
func NewAssignment(profileID primitive.ObjectID, kind AssignmentKind, itemID primitive.ObjectID, itemName string, totalDuration int, start time.Time) *Assignment {
	return &Assignment{
		ProfileID:     profileID,
		Kind:          kind,
		ItemID:        itemID,
		ItemName:      itemName,
		TotalDuration: totalDuration,
		StartDate:     Day(start),
		Position:      1,
		Status:        StatusActive,
	}
}

// DurationDays converts the total duration to calendar days.
func (a *Assignment) DurationDays() int {
	if a.Kind == KindRoutine {
		return a.TotalDuration * 7
	}
	return a.TotalDuration
}

// ProjectedEnd is the last day the assignment covers if followed to the end.
func (a *Assignment) ProjectedEnd() time.Time {
	days := a.DurationDays()
	if days < 1 {
		days = 1
	}
	return Day(a.StartDate).AddDate(0, 0, days-1)
}

// Range is the span of days the assignment occupies. A stamped end date
// wins over the projected one.
func (a *Assignment) Range() DateRange {
	start := Day(a.StartDate)
	end := a.ProjectedEnd()
	if a.EndDate != nil {
		end = Day(*a.EndDate)
	}
	if end.Before(start) {
		end = start
	}
	return DateRange{From: start, To: end}
}

// Advance moves the position forward by one, never past TotalDuration.
// It reports whether the position changed.
func (a *Assignment) Advance() (bool, error) {
	if a.Status != StatusActive {
		return false, ErrAssignmentNotActive
	}
	if a.Position >= a.TotalDuration {
		return false, nil
	}
	a.Position++
	return true, nil
}

// Complete finishes the assignment. Completing twice is a no-op.
func (a *Assignment) Complete(now time.Time) (bool, error) {
	return a.finish(StatusCompleted, now)
}

// Cancel abandons the assignment. Cancelling twice is a no-op.
func (a *Assignment) Cancel(now time.Time) (bool, error) {
	return a.finish(StatusCancelled, now)
}

func (a *Assignment) finish(target AssignmentStatus, now time.Time) (bool, error) {
	if a.Status == target {
		return false, nil
	}
	if a.Status.Terminal() {
		return false, ErrAssignmentTerminal
	}
	end := Day(now)
	a.Status = target
	a.EndDate = &end
	return true, nil
}

// Pause suspends an active assignment.
func (a *Assignment) Pause() (bool, error) {
	switch {
	case a.Status == StatusPaused:
		return false, nil
	case a.Status.Terminal():
		return false, ErrAssignmentTerminal
	}
	a.Status = StatusPaused
	return true, nil
}

// Resume reactivates a paused assignment.
func (a *Assignment) Resume() (bool, error) {
	switch {
	case a.Status == StatusActive:
		return false, nil
	case a.Status.Terminal():
		return false, ErrAssignmentTerminal
	case a.Status != StatusPaused:
		return false, ErrAssignmentNotPaused
	}
	a.Status = StatusActive
	return true, nil
}
