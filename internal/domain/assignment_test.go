package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPlanAssignment(duration int) *Assignment {
	start := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)
	return NewAssignment(primitive.NewObjectID(), KindPlan, primitive.NewObjectID(), "Cutting", duration, start)
}

func TestNewAssignment(t *testing.T) {
	a := newPlanAssignment(30)
	assert.Equal(t, 1, a.Position)
	assert.Equal(t, StatusActive, a.Status)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), a.StartDate)
	assert.Nil(t, a.EndDate)
}

func TestAssignmentAdvanceCapsAtDuration(t *testing.T) {
	a := newPlanAssignment(5)
	a.Position = 5

	moved, err := a.Advance()
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 5, a.Position)
}

func TestAssignmentAdvanceNeverExceedsDuration(t *testing.T) {
	for _, duration := range []int{1, 2, 7, 12} {
		a := newPlanAssignment(duration)
		for i := 0; i < duration*3; i++ {
			_, err := a.Advance()
			require.NoError(t, err)
			assert.LessOrEqual(t, a.Position, duration)
		}
		assert.Equal(t, duration, a.Position)
	}
}

func TestAssignmentAdvanceRequiresActive(t *testing.T) {
	a := newPlanAssignment(5)
	_, err := a.Pause()
	require.NoError(t, err)

	_, err = a.Advance()
	assert.ErrorIs(t, err, ErrAssignmentNotActive)
	assert.Equal(t, 1, a.Position)
}

func TestAssignmentComplete(t *testing.T) {
	a := newPlanAssignment(5)
	now := time.Date(2024, 1, 3, 22, 0, 0, 0, time.UTC)

	changed, err := a.Complete(now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusCompleted, a.Status)
	require.NotNil(t, a.EndDate)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), *a.EndDate)

	// Second completion keeps the first end date.
	changed, err = a.Complete(now.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), *a.EndDate)
}

func TestAssignmentCancelAfterCompleteFails(t *testing.T) {
	a := newPlanAssignment(5)
	_, err := a.Complete(time.Now())
	require.NoError(t, err)

	_, err = a.Cancel(time.Now())
	assert.ErrorIs(t, err, ErrAssignmentTerminal)
	assert.Equal(t, StatusCompleted, a.Status)
}

func TestAssignmentCancelTwiceIsNoop(t *testing.T) {
	a := newPlanAssignment(5)
	changed, err := a.Cancel(time.Now())
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = a.Cancel(time.Now())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, StatusCancelled, a.Status)
}

func TestAssignmentPauseResume(t *testing.T) {
	a := newPlanAssignment(5)

	changed, err := a.Pause()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusPaused, a.Status)

	changed, err = a.Resume()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusActive, a.Status)

	changed, err = a.Resume()
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = a.Cancel(time.Now())
	require.NoError(t, err)
	_, err = a.Pause()
	assert.ErrorIs(t, err, ErrAssignmentTerminal)
	_, err = a.Resume()
	assert.ErrorIs(t, err, ErrAssignmentTerminal)
}

func TestAssignmentRange(t *testing.T) {
	plan := newPlanAssignment(10)
	r := plan.Range()
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), r.To)

	routine := NewAssignment(primitive.NewObjectID(), KindRoutine, primitive.NewObjectID(), "Full body", 2, plan.StartDate)
	assert.Equal(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), routine.Range().To)

	_, err := plan.Cancel(time.Date(2024, 1, 4, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), plan.Range().To)
}

func TestAssignmentRangeEndBeforeStart(t *testing.T) {
	a := newPlanAssignment(10)
	a.StartDate = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := a.Cancel(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	r := a.Range()
	assert.Equal(t, r.From, r.To)
}
