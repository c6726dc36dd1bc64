package domain

import (
	"fmt"
	"time"
)

type Project struct {
	ID       string
	TenantID string
	Name     string

	// OriginalBudgetCents is fixed at creation and is the baseline for all
	// variance calculations. CurrentBudgetCents starts equal to it and moves
	// only through approved change orders.
	OriginalBudgetCents int64
	CurrentBudgetCents  int64

	// ApprovedBudgetCents is set exactly once, when the project transitions
	// draft -> approved, to the value of CurrentBudgetCents at that moment.
	ApprovedBudgetCents *int64

	Status ProjectStatus

	// Advisory policy fields consumed by an external approval-policy layer;
	// the core exposes them but does not enforce them.
	RequiresApproval       bool
	ApprovalThresholdCents *int64

	ApprovedBy *string
	ApprovedAt *time.Time

	// BudgetVersion guards optimistic-concurrency writes against
	// CurrentBudgetCents. Incremented on every budget or approval write.
	BudgetVersion int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields required at creation time.
func (p *Project) Validate() error {
	if p.TenantID == "" {
		return fmt.Errorf("tenant id is required: %w", ErrValidation)
	}
	if p.Name == "" {
		return fmt.Errorf("project name is required: %w", ErrValidation)
	}
	if p.OriginalBudgetCents < 0 {
		return fmt.Errorf("original budget must not be negative: %w", ErrValidation)
	}
	return nil
}

// Approve transitions the project draft -> approved, snapshotting the
// current budget as the immutable approved budget.
func (p *Project) Approve(by string, at time.Time) error {
	if p.Status != ProjectDraft {
		return fmt.Errorf("project is %s, only draft projects can be approved: %w", p.Status, ErrInvalidTransition)
	}
	snapshot := p.CurrentBudgetCents
	p.Status = ProjectApproved
	p.ApprovedBudgetCents = &snapshot
	p.ApprovedBy = &by
	p.ApprovedAt = &at
	p.UpdatedAt = at
	return nil
}

// BudgetDriftCents reports how far the live budget has moved since project
// approval. Zero for projects that have not been approved yet.
func (p *Project) BudgetDriftCents() int64 {
	if p.ApprovedBudgetCents == nil {
		return 0
	}
	return p.CurrentBudgetCents - *p.ApprovedBudgetCents
}

// NeedsSecondApproval reports whether the advisory approval policy flags a
// change of the given magnitude. Callers decide what to do with the answer;
// the core never blocks on it.
func (p *Project) NeedsSecondApproval(amountCents int64) bool {
	if !p.RequiresApproval || p.ApprovalThresholdCents == nil {
		return false
	}
	if amountCents < 0 {
		amountCents = -amountCents
	}
	return amountCents > *p.ApprovalThresholdCents
}
