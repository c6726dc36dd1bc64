// Package budget derives roll-up figures from a project's cost items and
// phases. Everything here is a pure function of the entities passed in:
// no side effects, deterministic, callable any number of times.
package budget

import (
	"costbook/internal/domain"
)

// Summary is the project-level roll-up consumed by inspect/summary views.
type Summary struct {
	TotalBudgetedCents  int64
	TotalCommittedCents int64
	TotalActualCents    int64

	// VarianceCents = current budget - total committed. Positive means
	// headroom, negative means commitments exceed the live budget.
	VarianceCents int64

	Phases []PhaseSubtotal
}

// PhaseSubtotal groups cost item figures under one phase. The zero-value
// PhaseID marks the bucket of items not assigned to any phase.
type PhaseSubtotal struct {
	PhaseID   string
	PhaseName string

	BudgetedCents  int64
	CommittedCents int64
	ActualCents    int64
	ItemCount      int
}

// UnassignedPhaseName labels the bucket of phase-less cost items.
const UnassignedPhaseName = "(unassigned)"

// Summarize computes the project roll-up. Phase subtotals follow the order
// of the phases slice (callers pass phases in sibling order); the unassigned
// bucket, when non-empty, comes last.
func Summarize(p *domain.Project, phases []*domain.Phase, items []*domain.CostItem) Summary {
	s := Summary{}

	byPhase := make(map[string]*PhaseSubtotal, len(phases)+1)
	for _, ph := range phases {
		sub := &PhaseSubtotal{PhaseID: ph.ID, PhaseName: ph.Name}
		byPhase[ph.ID] = sub
		s.Phases = append(s.Phases, PhaseSubtotal{})
	}
	unassigned := &PhaseSubtotal{PhaseName: UnassignedPhaseName}

	for _, item := range items {
		s.TotalBudgetedCents += item.BudgetedCents
		s.TotalCommittedCents += item.CommittedCents
		s.TotalActualCents += item.ActualCents

		sub := unassigned
		if item.PhaseID != nil {
			if found, ok := byPhase[*item.PhaseID]; ok {
				sub = found
			}
		}
		sub.BudgetedCents += item.BudgetedCents
		sub.CommittedCents += item.CommittedCents
		sub.ActualCents += item.ActualCents
		sub.ItemCount++
	}

	for i, ph := range phases {
		s.Phases[i] = *byPhase[ph.ID]
	}
	if unassigned.ItemCount > 0 {
		s.Phases = append(s.Phases, *unassigned)
	}

	s.VarianceCents = p.CurrentBudgetCents - s.TotalCommittedCents
	return s
}
