package domain

import (
	"fmt"
	"time"
)

// Phase is an ordered sub-division of project work used to group cost items.
// Ordering among siblings is by OrderIndex, ties broken by creation time.
type Phase struct {
	ID        string
	TenantID  string
	ProjectID string
	Name      string

	OrderIndex int

	// BudgetCents is an optional per-phase allocation; it does not feed the
	// project's current budget.
	BudgetCents *int64

	// DependsOnPhaseID names a same-project phase that logically precedes
	// this one. Advisory metadata only; schedule feasibility is not checked.
	DependsOnPhaseID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Phase) Validate() error {
	if p.ProjectID == "" {
		return fmt.Errorf("phase project id is required: %w", ErrValidation)
	}
	if p.Name == "" {
		return fmt.Errorf("phase name is required: %w", ErrValidation)
	}
	if p.BudgetCents != nil && *p.BudgetCents < 0 {
		return fmt.Errorf("phase budget must not be negative: %w", ErrValidation)
	}
	return nil
}
