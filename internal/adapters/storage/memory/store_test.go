package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-care/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-care/internal/domain"
)

func TestTreatmentPlansKeepAppendOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.AppendTreatmentPlan(ctx, &domain.TreatmentPlan{ID: "a", Status: domain.PlanApproved}))
	require.NoError(t, s.AppendTreatmentPlan(ctx, &domain.TreatmentPlan{ID: "b", Status: domain.PlanPending}))
	require.NoError(t, s.AppendTreatmentPlan(ctx, &domain.TreatmentPlan{ID: "c", Status: domain.PlanPending}))

	pending, err := s.FirstPendingTreatmentPlan(ctx)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, domain.TreatmentPlanID("b"), pending.ID)

	all, err := s.ListTreatmentPlans(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.TreatmentPlanID("c"), all[2].ID)
}

func TestFirstPendingTreatmentPlanNone(t *testing.T) {
	s := memory.NewStore()

	pending, err := s.FirstPendingTreatmentPlan(context.Background())
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestAppendTreatmentPlanRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.AppendTreatmentPlan(ctx, &domain.TreatmentPlan{ID: "a"}))
	assert.Error(t, s.AppendTreatmentPlan(ctx, &domain.TreatmentPlan{ID: "a"}))
}

func TestReturnedPlansAreCopies(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	plan := &domain.UserPlan{
		ID:          "up-1",
		Suggestions: []domain.Suggestion{{ID: "s1", Status: domain.ActivityPending}},
	}
	require.NoError(t, s.AppendUserPlan(ctx, plan))

	// Mutating the caller's value after append must not leak into the store.
	plan.Suggestions[0].Status = domain.ActivityCompleted

	got, err := s.GetUserPlan(ctx, "up-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityPending, got.Suggestions[0].Status)

	got.Suggestions[0].Notes = "changed"
	again, err := s.GetUserPlan(ctx, "up-1")
	require.NoError(t, err)
	assert.Empty(t, again.Suggestions[0].Notes)
}

func TestLatestUserPlan(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	latest, err := s.LatestUserPlan(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	require.NoError(t, s.AppendUserPlan(ctx, &domain.UserPlan{ID: "first"}))
	require.NoError(t, s.AppendUserPlan(ctx, &domain.UserPlan{ID: "second"}))

	latest, err = s.LatestUserPlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.UserPlanID("second"), latest.ID)
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	err := s.UpdateUserPlan(ctx, &domain.UserPlan{ID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.UpdateTreatmentPlan(ctx, &domain.TreatmentPlan{ID: "nope"})
	assert.ErrorIs(t, err, domain.ErrTreatmentPlanNotFound)

	_, err = s.GetUserPlan(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrUserPlanNotFound)
}

func TestActivityLogFilterAndClear(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.AppendActivityLog(ctx, &domain.ActivityLogEntry{ID: "1", PlanID: "p1"}))
	require.NoError(t, s.AppendActivityLog(ctx, &domain.ActivityLogEntry{ID: "2", PlanID: "p2"}))
	require.NoError(t, s.AppendActivityLog(ctx, &domain.ActivityLogEntry{ID: "3", PlanID: "p1"}))

	all, err := s.ListActivityLog(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	p1, err := s.ListActivityLog(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, p1, 2)
	assert.Equal(t, domain.ActivityLogID("3"), p1[1].ID)

	require.NoError(t, s.AppendUserPlan(ctx, &domain.UserPlan{ID: "x"}))
	require.NoError(t, s.Clear(ctx))

	all, err = s.ListActivityLog(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)

	plans, err := s.ListUserPlans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}
