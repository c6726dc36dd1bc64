package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"costbook/internal/db"
	"costbook/internal/domain"
	"costbook/internal/repository"
)

type phaseService struct {
	phases   repository.PhaseRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork
}

func NewPhaseService(phases repository.PhaseRepo, projects repository.ProjectRepo, uow db.UnitOfWork) PhaseService {
	return &phaseService{phases: phases, projects: projects, uow: uow}
}

func (s *phaseService) Create(ctx context.Context, actor domain.Actor, p *domain.Phase) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	// The owning project must exist in this tenant.
	if _, err := s.projects.GetByID(ctx, actor.TenantID, p.ProjectID); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.TenantID = actor.TenantID
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := p.Validate(); err != nil {
		return err
	}
	return s.phases.Create(ctx, p)
}

func (s *phaseService) GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.Phase, error) {
	return s.phases.GetByID(ctx, actor.TenantID, id)
}

func (s *phaseService) ListByProject(ctx context.Context, actor domain.Actor, projectID string) ([]*domain.Phase, error) {
	return s.phases.ListByProject(ctx, actor.TenantID, projectID)
}

func (s *phaseService) Update(ctx context.Context, actor domain.Actor, p *domain.Phase) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	p.TenantID = actor.TenantID
	p.UpdatedAt = time.Now().UTC()
	if err := p.Validate(); err != nil {
		return err
	}
	return s.phases.Update(ctx, p)
}

// Delete detaches the phase's cost items, then removes the phase, atomically.
// Either both happen or neither does; a cost item is never left pointing at a
// phase that no longer exists.
func (s *phaseService) Delete(ctx context.Context, actor domain.Actor, id string) (int64, error) {
	if err := actor.Validate(); err != nil {
		return 0, err
	}

	var detached int64
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txItems := repository.NewSQLiteCostItemRepo(tx)

		if _, err := txPhases.GetByID(ctx, actor.TenantID, id); err != nil {
			return err
		}

		n, err := txItems.DetachPhase(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		detached = n

		return txPhases.Delete(ctx, actor.TenantID, id)
	})
	if err != nil {
		return 0, err
	}
	return detached, nil
}
