package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costbook/internal/testutil"
)

// Deadlines come from the caller's context; the service layer surfaces the
// wrapped context error rather than inventing its own timeout sentinel.
func TestServiceOperations_HonorCanceledContext(t *testing.T) {
	env := newTestEnv(t)
	actor := testutil.TestActor()

	proj := env.createProject(t, context.Background(), "Deadline", 100_000_00)
	result, err := env.orderSvc.Propose(context.Background(), actor, proj.ID, "slow", "", 5_000_00)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = env.orderSvc.Approve(ctx, actor, result.Order.ID)
	assert.ErrorIs(t, err, context.Canceled)

	// Nothing was applied.
	fetched, err := env.projectSvc.GetByID(context.Background(), actor, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000_00), fetched.CurrentBudgetCents)
}
