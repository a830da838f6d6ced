package demo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-care/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-care/internal/app/demo"
	"github.com/PabloGalante/farum-care/internal/domain"
)

func TestResetLeavesOnlySeedData(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	seeder, err := demo.NewSeeder(store)
	require.NoError(t, err)

	// Dirty the store first so Reset has something to clear.
	require.NoError(t, seeder.Seed(ctx))
	require.NoError(t, store.AppendTreatmentPlan(ctx, &domain.TreatmentPlan{ID: "extra", Status: domain.PlanPending}))
	require.NoError(t, store.AppendActivityLog(ctx, &domain.ActivityLogEntry{ID: "log-1", PlanID: "up-sample-001"}))

	counts, err := seeder.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, demo.Counts{TreatmentPlans: 1, UserPlans: 1, ActivityLogs: 0}, counts)

	tp, err := store.FirstPendingTreatmentPlan(ctx)
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.Equal(t, domain.PlanPending, tp.Status)
	assert.Len(t, tp.Suggestions, 4)
	assert.Nil(t, tp.ApprovedAt)

	up, err := store.LatestUserPlan(ctx)
	require.NoError(t, err)
	require.NotNil(t, up)
	assert.Equal(t, domain.DemoPatientID, up.PatientID)
	require.Len(t, up.Suggestions, 4)

	var completed, pending int
	for _, s := range up.Suggestions {
		switch s.Status {
		case domain.ActivityCompleted:
			completed++
		case domain.ActivityPending:
			pending++
		}
	}
	assert.Equal(t, 2, completed)
	assert.Equal(t, 1, pending)
	assert.True(t, up.NextSession.After(up.StartDate))
}
