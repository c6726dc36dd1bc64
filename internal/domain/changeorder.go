package domain

import (
	"fmt"
	"time"
)

// ChangeOrder is a proposed, signed adjustment to a project's budget. It is
// created pending and transitions exactly once to approved or rejected.
type ChangeOrder struct {
	ID        string
	TenantID  string
	ProjectID string

	Reason      string
	Description string

	// AmountChangeCents is signed: positive increases the budget, negative
	// decreases it.
	AmountChangeCents int64

	Status ChangeOrderStatus

	// OriginalBudgetCents snapshots the project's current budget at proposal
	// time; NewBudgetCents = OriginalBudgetCents + AmountChangeCents. Both
	// are computed once and never recomputed, even if the project's budget
	// moves before the order is decided; the pair is the audit record of
	// what was proposed against what baseline.
	OriginalBudgetCents int64
	NewBudgetCents      int64

	RejectionReason string
	DecidedBy       *string
	DecidedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewChangeOrder builds a pending change order against the given project,
// snapshotting its live current budget as the proposal baseline.
func NewChangeOrder(p *Project, reason, description string, amountChangeCents int64) (*ChangeOrder, error) {
	if reason == "" {
		return nil, fmt.Errorf("change order reason is required: %w", ErrValidation)
	}
	if amountChangeCents == 0 {
		return nil, fmt.Errorf("change order amount must be non-zero, there is nothing to approve: %w", ErrValidation)
	}
	return &ChangeOrder{
		TenantID:            p.TenantID,
		ProjectID:           p.ID,
		Reason:              reason,
		Description:         description,
		AmountChangeCents:   amountChangeCents,
		Status:              ChangeOrderPending,
		OriginalBudgetCents: p.CurrentBudgetCents,
		NewBudgetCents:      p.CurrentBudgetCents + amountChangeCents,
	}, nil
}

// Approve transitions the order pending -> approved, stamping the decider.
func (c *ChangeOrder) Approve(by string, at time.Time) error {
	if c.Status != ChangeOrderPending {
		return fmt.Errorf("change order is %s, only pending orders can be approved: %w", c.Status, ErrInvalidTransition)
	}
	c.Status = ChangeOrderApproved
	c.DecidedBy = &by
	c.DecidedAt = &at
	c.UpdatedAt = at
	return nil
}

// Reject transitions the order pending -> rejected, recording the reason.
// The owning project's budget is never touched by a rejection.
func (c *ChangeOrder) Reject(by, reason string, at time.Time) error {
	if c.Status != ChangeOrderPending {
		return fmt.Errorf("change order is %s, only pending orders can be rejected: %w", c.Status, ErrInvalidTransition)
	}
	c.Status = ChangeOrderRejected
	c.RejectionReason = reason
	c.DecidedBy = &by
	c.DecidedAt = &at
	c.UpdatedAt = at
	return nil
}
