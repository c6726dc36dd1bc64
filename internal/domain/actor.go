package domain

import "fmt"

// Actor identifies who is performing an operation and under which tenant.
// It is threaded explicitly through every mutating call instead of being
// resolved from ambient session state.
type Actor struct {
	TenantID string
	UserID   string
}

func (a Actor) Validate() error {
	if a.TenantID == "" {
		return fmt.Errorf("tenant id is required: %w", ErrValidation)
	}
	if a.UserID == "" {
		return fmt.Errorf("actor user id is required: %w", ErrValidation)
	}
	return nil
}
