package service

import "fmt"

// PartialApplyError reports a change-order approval whose status flip landed
// but whose project budget write did not. The order stays approved; the
// caller (or an operator) reconciles the budget toward TargetBudgetCents.
type PartialApplyError struct {
	ChangeOrderID     string
	ProjectID         string
	TargetBudgetCents int64
	Err               error
}

func (e *PartialApplyError) Error() string {
	return fmt.Sprintf("change order %s approved but budget update on project %s (target %d cents) failed: %v",
		e.ChangeOrderID, e.ProjectID, e.TargetBudgetCents, e.Err)
}

func (e *PartialApplyError) Unwrap() error {
	return e.Err
}
