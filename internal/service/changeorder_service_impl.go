package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"costbook/internal/domain"
	"costbook/internal/repository"
)

// DefaultBudgetWriteAttempts bounds the re-read/recompute loop after the
// order's status flip has landed.
const DefaultBudgetWriteAttempts = 3

type changeOrderService struct {
	orders   repository.ChangeOrderRepo
	projects repository.ProjectRepo
	attempts int
	observer OperationObserver
}

func NewChangeOrderService(orders repository.ChangeOrderRepo, projects repository.ProjectRepo, budgetWriteAttempts int, observers ...OperationObserver) ChangeOrderService {
	if budgetWriteAttempts < 1 {
		budgetWriteAttempts = DefaultBudgetWriteAttempts
	}
	return &changeOrderService{
		orders:   orders,
		projects: projects,
		attempts: budgetWriteAttempts,
		observer: operationObserverOrNoop(observers),
	}
}

func (s *changeOrderService) Propose(ctx context.Context, actor domain.Actor, projectID, reason, description string, amountChangeCents int64) (result *ProposeResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project_id":          projectID,
		"tenant_id":           actor.TenantID,
		"amount_change_cents": amountChangeCents,
	}
	defer func() {
		s.observer.ObserveOperation(ctx, OperationEvent{
			Name:      "propose-change-order",
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

	project, err := s.projects.GetByID(ctx, actor.TenantID, projectID)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewChangeOrder(project, reason, description, amountChangeCents)
	if err != nil {
		return nil, err
	}
	order.ID = uuid.New().String()
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	if err = s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	return &ProposeResult{
		Order:               order,
		NeedsSecondApproval: project.NeedsSecondApproval(amountChangeCents),
	}, nil
}

func (s *changeOrderService) GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.ChangeOrder, error) {
	return s.orders.GetByID(ctx, actor.TenantID, id)
}

func (s *changeOrderService) ListByProject(ctx context.Context, actor domain.Actor, projectID string) ([]*domain.ChangeOrder, error) {
	return s.orders.ListByProject(ctx, actor.TenantID, projectID)
}

// Approve is two independent single-record writes, on purpose. The status
// flip (conditional on the order still being pending) is the decision of
// record; once it lands it is never rolled back. The budget write is a
// version-conditioned delta against the live current budget, re-read and
// retried a bounded number of times so that racing approvals on the same
// project both land. If the budget write still cannot land, the caller gets
// a *PartialApplyError naming the budget the project should reach.
func (s *changeOrderService) Approve(ctx context.Context, actor domain.Actor, id string) (project *domain.Project, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"change_order_id": id, "tenant_id": actor.TenantID}
	defer func() {
		s.observer.ObserveOperation(ctx, OperationEvent{
			Name:      "approve-change-order",
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

	order, err := s.orders.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.ChangeOrderPending {
		return nil, fmt.Errorf("change order is %s, only pending orders can be approved: %w", order.Status, domain.ErrInvalidTransition)
	}
	fields["project_id"] = order.ProjectID
	fields["amount_change_cents"] = order.AmountChangeCents

	// First write: decide the order. Failure here leaves nothing applied and
	// surfaces as-is (a racing decision shows up as ErrInvalidTransition).
	at := time.Now().UTC()
	if err = s.orders.MarkApproved(ctx, actor.TenantID, order.ID, actor.UserID, at); err != nil {
		return nil, err
	}

	// Second write: apply the delta to the live budget, not to the stale
	// NewBudgetCents snapshot, so approvals that landed since the proposal
	// are preserved.
	project, err = s.applyBudgetDelta(ctx, actor.TenantID, order)
	if err != nil {
		return nil, err
	}
	fields["current_budget_cents"] = project.CurrentBudgetCents
	return project, nil
}

func (s *changeOrderService) applyBudgetDelta(ctx context.Context, tenantID string, order *domain.ChangeOrder) (*domain.Project, error) {
	var target int64
	for attempt := 0; attempt < s.attempts; attempt++ {
		project, err := s.projects.GetByID(ctx, tenantID, order.ProjectID)
		if err != nil {
			return nil, &PartialApplyError{
				ChangeOrderID:     order.ID,
				ProjectID:         order.ProjectID,
				TargetBudgetCents: order.NewBudgetCents,
				Err:               err,
			}
		}

		target = project.CurrentBudgetCents + order.AmountChangeCents
		err = s.projects.UpdateBudget(ctx, tenantID, order.ProjectID, target, project.BudgetVersion)
		if err == nil {
			return s.projects.GetByID(ctx, tenantID, order.ProjectID)
		}
		if errors.Is(err, repository.ErrConcurrentModification) {
			continue
		}
		return nil, &PartialApplyError{
			ChangeOrderID:     order.ID,
			ProjectID:         order.ProjectID,
			TargetBudgetCents: target,
			Err:               err,
		}
	}
	return nil, &PartialApplyError{
		ChangeOrderID:     order.ID,
		ProjectID:         order.ProjectID,
		TargetBudgetCents: target,
		Err:               fmt.Errorf("budget write attempts exhausted: %w", repository.ErrConcurrentModification),
	}
}

func (s *changeOrderService) Reject(ctx context.Context, actor domain.Actor, id, reason string) (order *domain.ChangeOrder, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"change_order_id": id, "tenant_id": actor.TenantID}
	defer func() {
		s.observer.ObserveOperation(ctx, OperationEvent{
			Name:      "reject-change-order",
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

	at := time.Now().UTC()
	if err = s.orders.MarkRejected(ctx, actor.TenantID, id, actor.UserID, reason, at); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, actor.TenantID, id)
}
