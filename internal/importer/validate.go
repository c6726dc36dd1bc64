package importer

import (
	"fmt"

	"costbook/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)

	phaseRefs := make(map[string]bool)
	errs = append(errs, validatePhases(schema.Phases, phaseRefs)...)
	errs = append(errs, validateCostItems(schema.CostItems, phaseRefs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required: %w", domain.ErrValidation))
	}
	if p.OriginalBudgetCents < 0 {
		errs = append(errs, fmt.Errorf("project.original_budget_cents must not be negative: %w", domain.ErrValidation))
	}
	if p.ApprovalThresholdCents != nil && *p.ApprovalThresholdCents < 0 {
		errs = append(errs, fmt.Errorf("project.approval_threshold_cents must not be negative: %w", domain.ErrValidation))
	}

	return errs
}

func validatePhases(phases []PhaseImport, phaseRefs map[string]bool) []error {
	var errs []error

	for i, ph := range phases {
		if ph.Ref == "" {
			errs = append(errs, fmt.Errorf("phases[%d].ref is required: %w", i, domain.ErrValidation))
		} else if phaseRefs[ph.Ref] {
			errs = append(errs, fmt.Errorf("phases[%d].ref %q is duplicated: %w", i, ph.Ref, domain.ErrValidation))
		} else {
			phaseRefs[ph.Ref] = true
		}
		if ph.Name == "" {
			errs = append(errs, fmt.Errorf("phases[%d].name is required: %w", i, domain.ErrValidation))
		}
		if ph.BudgetCents != nil && *ph.BudgetCents < 0 {
			errs = append(errs, fmt.Errorf("phases[%d].budget_cents must not be negative: %w", i, domain.ErrValidation))
		}
		if ph.DependsOnRef != nil && *ph.DependsOnRef == ph.Ref {
			errs = append(errs, fmt.Errorf("phases[%d].depends_on_ref must not reference itself: %w", i, domain.ErrValidation))
		}
	}

	// Dependency refs must resolve within the file.
	for i, ph := range phases {
		if ph.DependsOnRef != nil && !phaseRefs[*ph.DependsOnRef] {
			errs = append(errs, fmt.Errorf("phases[%d].depends_on_ref %q does not match any phase ref: %w", i, *ph.DependsOnRef, domain.ErrValidation))
		}
	}

	return errs
}

func validateCostItems(items []CostItemImport, phaseRefs map[string]bool) []error {
	var errs []error

	for i, item := range items {
		if item.Category == "" {
			errs = append(errs, fmt.Errorf("cost_items[%d].category is required: %w", i, domain.ErrValidation))
		} else if !domain.ValidCostCategories[item.Category] {
			errs = append(errs, fmt.Errorf("cost_items[%d].category: invalid value %q: %w", i, item.Category, domain.ErrValidation))
		}
		if item.BudgetedCents < 0 || item.CommittedCents < 0 || item.ActualCents < 0 {
			errs = append(errs, fmt.Errorf("cost_items[%d]: amounts must not be negative: %w", i, domain.ErrValidation))
		}
		if item.PhaseRef != nil && !phaseRefs[*item.PhaseRef] {
			errs = append(errs, fmt.Errorf("cost_items[%d].phase_ref %q does not match any phase ref: %w", i, *item.PhaseRef, domain.ErrValidation))
		}
	}

	return errs
}
