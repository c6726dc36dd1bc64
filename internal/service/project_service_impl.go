package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"costbook/internal/domain"
	"costbook/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	orders   repository.ChangeOrderRepo
	observer OperationObserver
}

func NewProjectService(projects repository.ProjectRepo, orders repository.ChangeOrderRepo, observers ...OperationObserver) ProjectService {
	return &projectService{
		projects: projects,
		orders:   orders,
		observer: operationObserverOrNoop(observers),
	}
}

func (s *projectService) Create(ctx context.Context, actor domain.Actor, p *domain.Project) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.TenantID = actor.TenantID
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.ProjectDraft
	}
	p.CurrentBudgetCents = p.OriginalBudgetCents
	p.BudgetVersion = 1
	if err := p.Validate(); err != nil {
		return err
	}
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, actor.TenantID, id)
}

func (s *projectService) List(ctx context.Context, actor domain.Actor) ([]*domain.Project, error) {
	return s.projects.List(ctx, actor.TenantID)
}

func (s *projectService) UpdateMeta(ctx context.Context, actor domain.Actor, p *domain.Project) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	p.TenantID = actor.TenantID
	p.UpdatedAt = time.Now().UTC()
	if err := p.Validate(); err != nil {
		return err
	}
	return s.projects.UpdateMeta(ctx, p)
}

func (s *projectService) Approve(ctx context.Context, actor domain.Actor, id string) (project *domain.Project, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": id, "tenant_id": actor.TenantID}
	defer func() {
		s.observer.ObserveOperation(ctx, OperationEvent{
			Name:      "approve-project",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = actor.Validate(); err != nil {
		return nil, err
	}

	p, err := s.projects.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	// Validate the transition up front for a clean error; the conditional
	// write below still guards against a race.
	if p.Status != domain.ProjectDraft {
		return nil, fmt.Errorf("project is %s, only draft projects can be approved: %w", p.Status, domain.ErrInvalidTransition)
	}

	at := time.Now().UTC()
	fields["approved_budget_cents"] = p.CurrentBudgetCents
	if err = s.projects.Approve(ctx, actor.TenantID, id, actor.UserID, at, p.CurrentBudgetCents, p.BudgetVersion); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, actor.TenantID, id)
}

func (s *projectService) Delete(ctx context.Context, actor domain.Actor, id string, force bool) error {
	if !force {
		orders, err := s.orders.ListByProject(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		for _, order := range orders {
			if order.Status == domain.ChangeOrderPending {
				return fmt.Errorf("project has pending change orders (use --force to override)")
			}
		}
	}
	return s.projects.Delete(ctx, actor.TenantID, id)
}
