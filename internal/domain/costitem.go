package domain

import (
	"fmt"
	"time"
)

// CostItem is a line-level budgeted/committed/actual expenditure record.
// Cost items inform earned/spent reporting; they never move the project's
// current budget, which is driven solely by approved change orders.
type CostItem struct {
	ID        string
	TenantID  string
	ProjectID string

	// PhaseID is nil for costs not attached to any phase. Deleting a phase
	// detaches its cost items rather than deleting them.
	PhaseID *string

	Category string

	BudgetedCents  int64
	CommittedCents int64
	ActualCents    int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *CostItem) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("cost item project id is required: %w", ErrValidation)
	}
	if c.Category == "" {
		return fmt.Errorf("cost item category is required: %w", ErrValidation)
	}
	if !ValidCostCategories[c.Category] {
		return fmt.Errorf("unknown cost category %q: %w", c.Category, ErrValidation)
	}
	if c.BudgetedCents < 0 || c.CommittedCents < 0 || c.ActualCents < 0 {
		return fmt.Errorf("cost item amounts must not be negative: %w", ErrValidation)
	}
	return nil
}

// OverspendCents is the raw amount by which actual spend exceeds the
// committed amount, zero when within commitment. Tolerance is applied by the
// aggregation layer; cost data often arrives before commitments are final.
func (c *CostItem) OverspendCents() int64 {
	over := c.ActualCents - c.CommittedCents
	if over < 0 {
		return 0
	}
	return over
}
