package service

import (
	"context"

	"costbook/internal/budget"
	"costbook/internal/domain"
	"costbook/internal/importer"
)

type ProjectService interface {
	Create(ctx context.Context, actor domain.Actor, p *domain.Project) error
	GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.Project, error)
	List(ctx context.Context, actor domain.Actor) ([]*domain.Project, error)
	// UpdateMeta writes name and approval-policy fields; budget fields only
	// move through change-order approval.
	UpdateMeta(ctx context.Context, actor domain.Actor, p *domain.Project) error
	// Approve transitions draft -> approved and snapshots the approved
	// budget from the live current budget. A budget write racing the
	// approval surfaces repository.ErrConcurrentModification; callers may
	// simply retry.
	Approve(ctx context.Context, actor domain.Actor, id string) (*domain.Project, error)
	// Delete refuses while pending change orders exist unless force is set.
	Delete(ctx context.Context, actor domain.Actor, id string, force bool) error
}

// ProposeResult pairs a created change order with the advisory approval-gate
// outcome. NeedsSecondApproval never blocks anything; it tells the caller to
// warn.
type ProposeResult struct {
	Order               *domain.ChangeOrder
	NeedsSecondApproval bool
}

type ChangeOrderService interface {
	Propose(ctx context.Context, actor domain.Actor, projectID, reason, description string, amountChangeCents int64) (*ProposeResult, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.ChangeOrder, error)
	ListByProject(ctx context.Context, actor domain.Actor, projectID string) ([]*domain.ChangeOrder, error)
	// Approve flips the order to approved, then applies its amount as a
	// delta to the live project budget. The two writes are deliberately
	// independent: once the order is decided it stays decided, and a budget
	// write that cannot land after bounded retries is reported as a
	// *PartialApplyError rather than rolled back.
	Approve(ctx context.Context, actor domain.Actor, id string) (*domain.Project, error)
	Reject(ctx context.Context, actor domain.Actor, id, reason string) (*domain.ChangeOrder, error)
}

type PhaseService interface {
	Create(ctx context.Context, actor domain.Actor, p *domain.Phase) error
	GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.Phase, error)
	ListByProject(ctx context.Context, actor domain.Actor, projectID string) ([]*domain.Phase, error)
	Update(ctx context.Context, actor domain.Actor, p *domain.Phase) error
	// Delete detaches the phase's cost items and removes the phase in one
	// transaction. Returns the number of detached items.
	Delete(ctx context.Context, actor domain.Actor, id string) (int64, error)
}

type CostItemService interface {
	// Create and Update return an advisory overrun warning when actual
	// exceeds committed beyond the configured tolerance. A non-nil warning
	// is not an error; the write has happened.
	Create(ctx context.Context, actor domain.Actor, c *domain.CostItem) (*budget.Overrun, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.CostItem, error)
	ListByProject(ctx context.Context, actor domain.Actor, projectID string) ([]*domain.CostItem, error)
	Update(ctx context.Context, actor domain.Actor, c *domain.CostItem) (*budget.Overrun, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// ProjectSummary is the full roll-up for one project.
type ProjectSummary struct {
	Project  *domain.Project
	Rollup   budget.Summary
	Overruns []budget.Overrun
	// DriftCents is current minus approved budget; nil before approval.
	DriftCents *int64
}

type SummaryService interface {
	ProjectSummary(ctx context.Context, actor domain.Actor, projectID string) (*ProjectSummary, error)
}

// ImportResult holds the outcome of a project import.
type ImportResult struct {
	Project       *domain.Project
	PhaseCount    int
	CostItemCount int
}

type ImportService interface {
	ImportProject(ctx context.Context, actor domain.Actor, filePath string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, actor domain.Actor, schema *importer.ImportSchema) (*ImportResult, error)
}
