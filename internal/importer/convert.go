package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"costbook/internal/domain"
)

// GeneratedProject holds the domain entities produced from an import schema,
// with ids assigned and file-local refs resolved.
type GeneratedProject struct {
	Project   *domain.Project
	Phases    []*domain.Phase
	CostItems []*domain.CostItem
}

// Convert turns a validated import schema into domain entities owned by the
// given tenant. Callers must run ValidateImportSchema first; Convert only
// re-checks what it needs to resolve refs safely.
func Convert(schema *ImportSchema, tenantID string) (*GeneratedProject, error) {
	now := time.Now().UTC()

	project := &domain.Project{
		ID:                     uuid.New().String(),
		TenantID:               tenantID,
		Name:                   schema.Project.Name,
		OriginalBudgetCents:    schema.Project.OriginalBudgetCents,
		CurrentBudgetCents:     schema.Project.OriginalBudgetCents,
		Status:                 domain.ProjectDraft,
		RequiresApproval:       schema.Project.RequiresApproval,
		ApprovalThresholdCents: schema.Project.ApprovalThresholdCents,
		BudgetVersion:          1,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}

	phaseIDByRef := make(map[string]string, len(schema.Phases))
	phases := make([]*domain.Phase, 0, len(schema.Phases))
	for _, ph := range schema.Phases {
		phase := &domain.Phase{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			ProjectID:   project.ID,
			Name:        ph.Name,
			OrderIndex:  ph.Order,
			BudgetCents: ph.BudgetCents,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		phaseIDByRef[ph.Ref] = phase.ID
		phases = append(phases, phase)
	}

	// Second pass: dependency refs can point at phases declared later.
	for i, ph := range schema.Phases {
		if ph.DependsOnRef == nil {
			continue
		}
		depID, ok := phaseIDByRef[*ph.DependsOnRef]
		if !ok {
			return nil, fmt.Errorf("phase %q: unresolved depends_on_ref %q", ph.Ref, *ph.DependsOnRef)
		}
		phases[i].DependsOnPhaseID = &depID
	}

	items := make([]*domain.CostItem, 0, len(schema.CostItems))
	for i, ci := range schema.CostItems {
		item := &domain.CostItem{
			ID:             uuid.New().String(),
			TenantID:       tenantID,
			ProjectID:      project.ID,
			Category:       ci.Category,
			BudgetedCents:  ci.BudgetedCents,
			CommittedCents: ci.CommittedCents,
			ActualCents:    ci.ActualCents,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if ci.PhaseRef != nil {
			phaseID, ok := phaseIDByRef[*ci.PhaseRef]
			if !ok {
				return nil, fmt.Errorf("cost item %d: unresolved phase_ref %q", i, *ci.PhaseRef)
			}
			item.PhaseID = &phaseID
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("cost item %d: %w", i, err)
		}
		items = append(items, item)
	}

	return &GeneratedProject{
		Project:   project,
		Phases:    phases,
		CostItems: items,
	}, nil
}
