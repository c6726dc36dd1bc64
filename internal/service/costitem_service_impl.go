package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"costbook/internal/budget"
	"costbook/internal/domain"
	"costbook/internal/repository"
)

type costItemService struct {
	items        repository.CostItemRepo
	projects     repository.ProjectRepo
	tolerancePct float64
}

// NewCostItemService builds the cost-item operations. tolerancePct is the
// overspend allowance (percent of committed) before writes start returning
// advisory overrun warnings.
func NewCostItemService(items repository.CostItemRepo, projects repository.ProjectRepo, tolerancePct float64) CostItemService {
	return &costItemService{items: items, projects: projects, tolerancePct: tolerancePct}
}

func (s *costItemService) Create(ctx context.Context, actor domain.Actor, c *domain.CostItem) (*budget.Overrun, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, actor.TenantID, c.ProjectID); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.TenantID = actor.TenantID
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.items.Create(ctx, c); err != nil {
		return nil, err
	}
	return budget.CheckOverrun(c, s.tolerancePct), nil
}

func (s *costItemService) GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.CostItem, error) {
	return s.items.GetByID(ctx, actor.TenantID, id)
}

func (s *costItemService) ListByProject(ctx context.Context, actor domain.Actor, projectID string) ([]*domain.CostItem, error) {
	return s.items.ListByProject(ctx, actor.TenantID, projectID)
}

func (s *costItemService) Update(ctx context.Context, actor domain.Actor, c *domain.CostItem) (*budget.Overrun, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}
	c.TenantID = actor.TenantID
	c.UpdatedAt = time.Now().UTC()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.items.Update(ctx, c); err != nil {
		return nil, err
	}
	return budget.CheckOverrun(c, s.tolerancePct), nil
}

func (s *costItemService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return s.items.Delete(ctx, actor.TenantID, id)
}
