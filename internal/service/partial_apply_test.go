package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costbook/internal/domain"
	"costbook/internal/repository"
	"costbook/internal/testutil"
)

// budgetWriteFailRepo delegates to a real repo but fails UpdateBudget with a
// fixed error, simulating a store outage between the two approval writes.
type budgetWriteFailRepo struct {
	repository.ProjectRepo
	err error
}

func (r *budgetWriteFailRepo) UpdateBudget(ctx context.Context, tenantID, id string, budgetCents, expectedVersion int64) error {
	return r.err
}

// budgetConflictNTimesRepo makes the first n UpdateBudget calls lose the
// optimistic race, then delegates.
type budgetConflictNTimesRepo struct {
	repository.ProjectRepo
	remaining int
}

func (r *budgetConflictNTimesRepo) UpdateBudget(ctx context.Context, tenantID, id string, budgetCents, expectedVersion int64) error {
	if r.remaining > 0 {
		r.remaining--
		return fmt.Errorf("project budget version moved: %w", repository.ErrConcurrentModification)
	}
	return r.ProjectRepo.UpdateBudget(ctx, tenantID, id, budgetCents, expectedVersion)
}

func TestChangeOrder_Approve_PartialApply_StoreFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := testutil.TestActor()

	proj := env.createProject(t, ctx, "Outage", 100_000_00)
	result, err := env.orderSvc.Propose(ctx, actor, proj.ID, "risky", "", 5_000_00)
	require.NoError(t, err)

	storeErr := errors.New("disk full")
	failing := &budgetWriteFailRepo{ProjectRepo: env.projects, err: storeErr}
	svc := NewChangeOrderService(env.orders, failing, DefaultBudgetWriteAttempts)

	_, err = svc.Approve(ctx, actor, result.Order.ID)

	var partial *PartialApplyError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, result.Order.ID, partial.ChangeOrderID)
	assert.Equal(t, proj.ID, partial.ProjectID)
	assert.Equal(t, int64(105_000_00), partial.TargetBudgetCents)
	assert.ErrorIs(t, err, storeErr)

	// The decision of record stands even though the budget write failed.
	order, fetchErr := env.orderSvc.GetByID(ctx, actor, result.Order.ID)
	require.NoError(t, fetchErr)
	assert.Equal(t, domain.ChangeOrderApproved, order.Status)

	// The budget itself is untouched.
	fetched, fetchErr := env.projectSvc.GetByID(ctx, actor, proj.ID)
	require.NoError(t, fetchErr)
	assert.Equal(t, int64(100_000_00), fetched.CurrentBudgetCents)
}

func TestChangeOrder_Approve_RetriesConflictAndLands(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := testutil.TestActor()

	proj := env.createProject(t, ctx, "Contended", 100_000_00)
	result, err := env.orderSvc.Propose(ctx, actor, proj.ID, "contested", "", 5_000_00)
	require.NoError(t, err)

	conflicting := &budgetConflictNTimesRepo{ProjectRepo: env.projects, remaining: 2}
	svc := NewChangeOrderService(env.orders, conflicting, DefaultBudgetWriteAttempts)

	updated, err := svc.Approve(ctx, actor, result.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(105_000_00), updated.CurrentBudgetCents)
	assert.Equal(t, 0, conflicting.remaining)
}

func TestChangeOrder_Approve_RetriesExhausted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := testutil.TestActor()

	proj := env.createProject(t, ctx, "Hot", 100_000_00)
	result, err := env.orderSvc.Propose(ctx, actor, proj.ID, "unlucky", "", 5_000_00)
	require.NoError(t, err)

	conflicting := &budgetConflictNTimesRepo{ProjectRepo: env.projects, remaining: DefaultBudgetWriteAttempts}
	svc := NewChangeOrderService(env.orders, conflicting, DefaultBudgetWriteAttempts)

	_, err = svc.Approve(ctx, actor, result.Order.ID)

	var partial *PartialApplyError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, result.Order.ID, partial.ChangeOrderID)
	assert.ErrorIs(t, err, repository.ErrConcurrentModification)

	// Every attempt consumed one simulated conflict.
	assert.Equal(t, 0, conflicting.remaining)
}

func TestPartialApplyError_Message(t *testing.T) {
	err := &PartialApplyError{
		ChangeOrderID:     "co-1",
		ProjectID:         "p-1",
		TargetBudgetCents: 105_000_00,
		Err:               errors.New("boom"),
	}
	assert.Contains(t, err.Error(), "co-1")
	assert.Contains(t, err.Error(), "p-1")
	assert.Contains(t, err.Error(), "10500000")
	assert.ErrorIs(t, err, err.Err)
}
