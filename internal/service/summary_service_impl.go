package service

import (
	"context"

	"costbook/internal/budget"
	"costbook/internal/domain"
	"costbook/internal/repository"
)

type summaryService struct {
	projects     repository.ProjectRepo
	phases       repository.PhaseRepo
	items        repository.CostItemRepo
	tolerancePct float64
}

func NewSummaryService(projects repository.ProjectRepo, phases repository.PhaseRepo, items repository.CostItemRepo, tolerancePct float64) SummaryService {
	return &summaryService{
		projects:     projects,
		phases:       phases,
		items:        items,
		tolerancePct: tolerancePct,
	}
}

func (s *summaryService) ProjectSummary(ctx context.Context, actor domain.Actor, projectID string) (*ProjectSummary, error) {
	project, err := s.projects.GetByID(ctx, actor.TenantID, projectID)
	if err != nil {
		return nil, err
	}
	phases, err := s.phases.ListByProject(ctx, actor.TenantID, projectID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByProject(ctx, actor.TenantID, projectID)
	if err != nil {
		return nil, err
	}

	summary := &ProjectSummary{
		Project:  project,
		Rollup:   budget.Summarize(project, phases, items),
		Overruns: budget.Overruns(items, s.tolerancePct),
	}
	if project.ApprovedBudgetCents != nil {
		drift := project.BudgetDriftCents()
		summary.DriftCents = &drift
	}
	return summary, nil
}
