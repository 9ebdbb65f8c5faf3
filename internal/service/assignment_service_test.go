package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAssign_CreatesActiveAssignment(t *testing.T) {
	f := newFixture()
	svc := f.assignmentService()
	uid, profile := f.user(2000)
	planID := f.plan("Cutting", 30)

	a, err := svc.Assign(context.Background(), uid, domain.KindPlan, planID, time.Time{})
	require.NoError(t, err)

	assert.False(t, a.ID.IsZero())
	assert.Equal(t, profile.ID, a.ProfileID)
	assert.Equal(t, "Cutting", a.ItemName)
	assert.Equal(t, 30, a.TotalDuration)
	assert.Equal(t, 1, a.Position)
	assert.Equal(t, domain.StatusActive, a.Status)
	assert.Equal(t, day(2024, 1, 10), a.StartDate, "zero start means today")
	assert.Nil(t, a.EndDate)
}

func TestAssign_Overlap(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.AssignmentKind
		first   time.Time
		second  time.Time
		overlap bool
	}{
		{"plan inside range", domain.KindPlan, day(2024, 1, 1), day(2024, 1, 3), true},
		{"plan on last day", domain.KindPlan, day(2024, 1, 1), day(2024, 1, 5), true},
		{"plan day after", domain.KindPlan, day(2024, 1, 1), day(2024, 1, 6), false},
		{"plan before start", domain.KindPlan, day(2024, 1, 3), day(2023, 12, 30), true},
		{"routine last day of second week", domain.KindRoutine, day(2024, 1, 1), day(2024, 1, 14), true},
		{"routine third week", domain.KindRoutine, day(2024, 1, 1), day(2024, 1, 15), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			svc := f.assignmentService()
			uid, _ := f.user(2000)
			var first, second primitive.ObjectID
			if tt.kind == domain.KindPlan {
				first, second = f.plan("A", 5), f.plan("B", 5)
			} else {
				first, second = f.routine("A", 2), f.routine("B", 2)
			}

			_, err := svc.Assign(context.Background(), uid, tt.kind, first, tt.first)
			require.NoError(t, err)

			_, err = svc.Assign(context.Background(), uid, tt.kind, second, tt.second)
			if tt.overlap {
				assert.ErrorIs(t, err, ErrAssignmentOverlap)
				assert.ErrorIs(t, err, ErrRuleViolation)
				assert.Equal(t, 1, f.assignments.t.len())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssign_OnlyActiveOfSameKindBlocks(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.assignmentService()
	uid, _ := f.user(2000)
	start := day(2024, 1, 1)

	plan, err := svc.Assign(ctx, uid, domain.KindPlan, f.plan("A", 30), start)
	require.NoError(t, err)

	// A routine over the same days is a different kind.
	_, err = svc.Assign(ctx, uid, domain.KindRoutine, f.routine("R", 4), start)
	require.NoError(t, err)

	_, err = svc.Pause(ctx, uid, plan.ID)
	require.NoError(t, err)
	second, err := svc.Assign(ctx, uid, domain.KindPlan, f.plan("B", 30), start)
	require.NoError(t, err, "paused assignments do not block")

	// Resuming the first plan now collides with the second.
	_, err = svc.Resume(ctx, uid, plan.ID)
	assert.ErrorIs(t, err, ErrAssignmentOverlap)

	_, err = svc.Cancel(ctx, uid, second.ID)
	require.NoError(t, err)
	resumed, err := svc.Resume(ctx, uid, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, resumed.Status)
}

func TestAssign_OtherProfilesDoNotBlock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.assignmentService()
	alice, _ := f.user(2000)
	bob, _ := f.user(2000)
	planID := f.plan("Shared", 10)

	_, err := svc.Assign(ctx, alice, domain.KindPlan, planID, day(2024, 1, 1))
	require.NoError(t, err)
	_, err = svc.Assign(ctx, bob, domain.KindPlan, planID, day(2024, 1, 1))
	assert.NoError(t, err)
}

func TestAssign_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.assignmentService()
	uid, _ := f.user(2000)

	_, err := svc.Assign(ctx, uid, domain.KindPlan, primitive.NewObjectID(), time.Time{})
	assert.ErrorIs(t, err, ErrNutritionPlanNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Assign(ctx, uid, domain.KindRoutine, primitive.NewObjectID(), time.Time{})
	assert.ErrorIs(t, err, ErrRoutineNotFound)

	_, err = svc.Assign(ctx, uid, "diet", f.plan("A", 5), time.Time{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Assign(ctx, primitive.NewObjectID(), domain.KindPlan, f.plan("B", 5), time.Time{})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestAdvance_CapsAtDuration(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.assignmentService()
	uid, _ := f.user(2000)

	a, err := svc.Assign(ctx, uid, domain.KindPlan, f.plan("Five", 5), day(2024, 1, 1))
	require.NoError(t, err)

	for want := 2; want <= 5; want++ {
		a, err = svc.Advance(ctx, uid, a.ID)
		require.NoError(t, err)
		assert.Equal(t, want, a.Position)
	}
	updates := f.assignments.updates

	a, err = svc.Advance(ctx, uid, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, a.Position)
	assert.Equal(t, updates, f.assignments.updates, "advancing at the cap writes nothing")

	stored, err := f.assignments.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Position)
}

func TestAdvance_RequiresActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.assignmentService()
	uid, _ := f.user(2000)

	a, err := svc.Assign(ctx, uid, domain.KindRoutine, f.routine("R", 4), day(2024, 1, 1))
	require.NoError(t, err)
	_, err = svc.Pause(ctx, uid, a.ID)
	require.NoError(t, err)

	_, err = svc.Advance(ctx, uid, a.ID)
	assert.ErrorIs(t, err, ErrRuleViolation)
	assert.ErrorIs(t, err, domain.ErrAssignmentNotActive)
}

func TestComplete_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.assignmentService()
	uid, _ := f.user(2000)

	a, err := svc.Assign(ctx, uid, domain.KindPlan, f.plan("P", 30), day(2024, 1, 1))
	require.NoError(t, err)

	done, err := svc.Complete(ctx, uid, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)
	require.NotNil(t, done.EndDate)
	assert.Equal(t, day(2024, 1, 10), *done.EndDate)

	f.now = f.now.AddDate(0, 0, 3)
	again, err := svc.Complete(ctx, uid, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, again.Status)
	assert.Equal(t, day(2024, 1, 10), *again.EndDate, "end date is not re-stamped")

	_, err = svc.Cancel(ctx, uid, a.ID)
	assert.ErrorIs(t, err, ErrRuleViolation)
	assert.ErrorIs(t, err, domain.ErrAssignmentTerminal)
}

func TestCancel_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.assignmentService()
	uid, _ := f.user(2000)

	a, err := svc.Assign(ctx, uid, domain.KindRoutine, f.routine("R", 4), day(2024, 1, 1))
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, uid, a.ID)
	require.NoError(t, err)
	updates := f.assignments.updates

	again, err := svc.Cancel(ctx, uid, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, again.Status)
	assert.Equal(t, updates, f.assignments.updates)

	_, err = svc.Complete(ctx, uid, a.ID)
	assert.ErrorIs(t, err, domain.ErrAssignmentTerminal)
}

func TestAssignment_OwnershipAndLookup(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.assignmentService()
	owner, _ := f.user(2000)
	stranger, _ := f.user(2000)

	a, err := svc.Assign(ctx, owner, domain.KindPlan, f.plan("P", 30), day(2024, 1, 1))
	require.NoError(t, err)

	_, err = svc.Advance(ctx, stranger, a.ID)
	assert.ErrorIs(t, err, ErrAssignmentAccessDenied)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetAssignment(ctx, owner, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	got, err := svc.GetAssignment(ctx, owner, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestListAssignmentsAndGetActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.assignmentService()
	uid, _ := f.user(2000)

	old, err := svc.Assign(ctx, uid, domain.KindPlan, f.plan("Old", 5), day(2023, 12, 1))
	require.NoError(t, err)
	_, err = svc.Complete(ctx, uid, old.ID)
	require.NoError(t, err)
	current, err := svc.Assign(ctx, uid, domain.KindPlan, f.plan("Current", 30), day(2024, 1, 1))
	require.NoError(t, err)
	_, err = svc.Assign(ctx, uid, domain.KindRoutine, f.routine("Lift", 4), day(2024, 1, 1))
	require.NoError(t, err)

	all, err := svc.ListAssignments(ctx, uid, repository.AssignmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	plans, err := svc.ListAssignments(ctx, uid, repository.AssignmentFilter{Kind: domain.KindPlan})
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	completed, err := svc.ListAssignments(ctx, uid, repository.AssignmentFilter{Status: domain.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, old.ID, completed[0].ID)

	_, err = svc.ListAssignments(ctx, uid, repository.AssignmentFilter{Status: "DONE"})
	assert.ErrorIs(t, err, ErrValidation)

	active, err := svc.GetActive(ctx, uid, domain.KindPlan)
	require.NoError(t, err)
	assert.Equal(t, current.ID, active.ID)

	other, _ := f.user(2000)
	_, err = svc.GetActive(ctx, other, domain.KindRoutine)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}
