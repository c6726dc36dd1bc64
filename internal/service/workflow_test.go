package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costbook/internal/domain"
	"costbook/internal/testutil"
)

// TestBudgetLifecycle walks a project through the full budget story: propose
// and approve an increase, reject a decrease, approve the project, then land
// another increase and watch the approved snapshot hold still while the live
// budget drifts.
func TestBudgetLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := testutil.TestActor()

	proj := env.createProject(t, ctx, "Lifecycle", 100_000_00)

	// Increase approved: 100000 -> 105000.
	inc, err := env.orderSvc.Propose(ctx, actor, proj.ID, "extra excavation", "", 5_000_00)
	require.NoError(t, err)
	updated, err := env.orderSvc.Approve(ctx, actor, inc.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(105_000_00), updated.CurrentBudgetCents)

	// Decrease rejected: budget stays 105000.
	dec, err := env.orderSvc.Propose(ctx, actor, proj.ID, "trim landscaping", "", -2_000_00)
	require.NoError(t, err)
	_, err = env.orderSvc.Reject(ctx, actor, dec.Order.ID, "landscaping already contracted")
	require.NoError(t, err)

	// Project approval snapshots the live 105000.
	approved, err := env.projectSvc.Approve(ctx, actor, proj.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovedBudgetCents)
	assert.Equal(t, int64(105_000_00), *approved.ApprovedBudgetCents)
	assert.Equal(t, int64(105_000_00), approved.CurrentBudgetCents)

	// A later increase moves current but not the snapshot.
	late, err := env.orderSvc.Propose(ctx, actor, proj.ID, "steel price jump", "", 10_000_00)
	require.NoError(t, err)
	final, err := env.orderSvc.Approve(ctx, actor, late.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(115_000_00), final.CurrentBudgetCents)
	require.NotNil(t, final.ApprovedBudgetCents)
	assert.Equal(t, int64(105_000_00), *final.ApprovedBudgetCents)
	assert.Equal(t, int64(10_000_00), final.BudgetDriftCents())

	// Full order history survives.
	orders, err := env.orderSvc.ListByProject(ctx, actor, proj.ID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	statuses := map[domain.ChangeOrderStatus]int{}
	for _, o := range orders {
		statuses[o.Status]++
	}
	assert.Equal(t, 2, statuses[domain.ChangeOrderApproved])
	assert.Equal(t, 1, statuses[domain.ChangeOrderRejected])

	// Current budget equals original plus approved deltas, always.
	var sum int64
	for _, o := range orders {
		if o.Status == domain.ChangeOrderApproved {
			sum += o.AmountChangeCents
		}
	}
	assert.Equal(t, final.CurrentBudgetCents, final.OriginalBudgetCents+sum)
}
