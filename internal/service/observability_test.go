package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costbook/internal/testutil"
)

func TestLogOperationObserver_WritesEvents(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogOperationObserver(&buf)

	obs.ObserveOperation(context.Background(), OperationEvent{
		Name:     "approve-change-order",
		Duration: 5 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"project_id": "p-1"},
	})

	out := buf.String()
	assert.Contains(t, out, "operation=approve-change-order")
	assert.Contains(t, out, "project_id=p-1")
	assert.Contains(t, out, "success=true")
}

func TestLogOperationObserver_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogOperationObserver(&buf)

	obs.ObserveOperation(context.Background(), OperationEvent{
		Name:    "approve-change-order",
		Success: false,
		Err:     errors.New("boom"),
	})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=boom")
}

func TestNewLogOperationObserver_NilWriter(t *testing.T) {
	obs := NewLogOperationObserver(nil)
	// Must be safe to call.
	obs.ObserveOperation(context.Background(), OperationEvent{Name: "noop"})
}

func TestServiceOperations_EmitEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := testutil.TestActor()

	var buf bytes.Buffer
	obs := NewLogOperationObserver(&buf)
	svc := NewChangeOrderService(env.orders, env.projects, DefaultBudgetWriteAttempts, obs)

	proj := env.createProject(t, ctx, "Observed", 100_000_00)
	result, err := svc.Propose(ctx, actor, proj.ID, "watched", "", 5_000_00)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, actor, result.Order.ID)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "operation=propose-change-order")
	assert.Contains(t, out, "operation=approve-change-order")
	assert.Contains(t, out, "amount_change_cents=500000")
}
