package repository

import (
	"context"
	"time"

	"costbook/internal/domain"
)

// All queries are tenant-scoped: an id belonging to another tenant behaves
// exactly like a missing id (ErrNotFound). Single-record writes are atomic;
// multi-record consistency is the service layer's job.

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Project, error)
	List(ctx context.Context, tenantID string) ([]*domain.Project, error)
	// UpdateMeta writes name and policy fields. Budget and approval fields
	// have dedicated conditional writes below.
	UpdateMeta(ctx context.Context, p *domain.Project) error
	// UpdateBudget sets current_budget conditionally on the budget version
	// read beforehand. A lost race returns ErrConcurrentModification.
	UpdateBudget(ctx context.Context, tenantID, id string, budgetCents, expectedVersion int64) error
	// Approve transitions draft -> approved, snapshotting approvedCents,
	// conditionally on both status and budget version.
	Approve(ctx context.Context, tenantID, id, approvedBy string, at time.Time, approvedCents, expectedVersion int64) error
	Delete(ctx context.Context, tenantID, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Phase, error)
	// ListByProject returns phases in sibling order: order_index first,
	// creation time breaking ties.
	ListByProject(ctx context.Context, tenantID, projectID string) ([]*domain.Phase, error)
	Update(ctx context.Context, p *domain.Phase) error
	Delete(ctx context.Context, tenantID, id string) error
}

type CostItemRepo interface {
	Create(ctx context.Context, c *domain.CostItem) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.CostItem, error)
	ListByProject(ctx context.Context, tenantID, projectID string) ([]*domain.CostItem, error)
	Update(ctx context.Context, c *domain.CostItem) error
	Delete(ctx context.Context, tenantID, id string) error
	// DetachPhase clears phase_id on every cost item tagged to the phase,
	// leaving the items themselves intact.
	DetachPhase(ctx context.Context, tenantID, phaseID string) (int64, error)
}

type ChangeOrderRepo interface {
	Create(ctx context.Context, c *domain.ChangeOrder) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.ChangeOrder, error)
	ListByProject(ctx context.Context, tenantID, projectID string) ([]*domain.ChangeOrder, error)
	// MarkApproved flips pending -> approved conditionally on the order
	// still being pending; a decided order returns ErrInvalidTransition
	// context via domain.ErrInvalidTransition.
	MarkApproved(ctx context.Context, tenantID, id, decidedBy string, at time.Time) error
	MarkRejected(ctx context.Context, tenantID, id, decidedBy, reason string, at time.Time) error
}
