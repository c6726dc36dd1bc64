package testutil

import (
	"time"

	"github.com/google/uuid"

	"costbook/internal/domain"
)

// TestTenant is the tenant every fixture belongs to unless overridden.
const TestTenant = "tenant-test"

// TestActor is a ready-made actor for service calls in tests.
func TestActor() domain.Actor {
	return domain.Actor{TenantID: TestTenant, UserID: "user-test"}
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithOriginalBudget(cents int64) ProjectOption {
	return func(p *domain.Project) {
		p.OriginalBudgetCents = cents
		p.CurrentBudgetCents = cents
	}
}

func WithCurrentBudget(cents int64) ProjectOption {
	return func(p *domain.Project) {
		p.CurrentBudgetCents = cents
	}
}

func WithApprovalThreshold(cents int64) ProjectOption {
	return func(p *domain.Project) {
		p.RequiresApproval = true
		p.ApprovalThresholdCents = &cents
	}
}

func WithTenant(tenantID string) ProjectOption {
	return func(p *domain.Project) {
		p.TenantID = tenantID
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:                  uuid.New().String(),
		TenantID:            TestTenant,
		Name:                name,
		OriginalBudgetCents: 100_000_00,
		CurrentBudgetCents:  100_000_00,
		Status:              domain.ProjectDraft,
		BudgetVersion:       1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithOrderIndex(i int) PhaseOption {
	return func(p *domain.Phase) {
		p.OrderIndex = i
	}
}

func WithPhaseBudget(cents int64) PhaseOption {
	return func(p *domain.Phase) {
		p.BudgetCents = &cents
	}
}

func WithDependsOn(phaseID string) PhaseOption {
	return func(p *domain.Phase) {
		p.DependsOnPhaseID = &phaseID
	}
}

func NewTestPhase(projectID, name string, opts ...PhaseOption) *domain.Phase {
	now := time.Now().UTC()
	p := &domain.Phase{
		ID:        uuid.New().String(),
		TenantID:  TestTenant,
		ProjectID: projectID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CostItem options
type CostItemOption func(*domain.CostItem)

func WithPhase(phaseID string) CostItemOption {
	return func(c *domain.CostItem) {
		c.PhaseID = &phaseID
	}
}

func WithAmounts(budgeted, committed, actual int64) CostItemOption {
	return func(c *domain.CostItem) {
		c.BudgetedCents = budgeted
		c.CommittedCents = committed
		c.ActualCents = actual
	}
}

func NewTestCostItem(projectID, category string, opts ...CostItemOption) *domain.CostItem {
	now := time.Now().UTC()
	c := &domain.CostItem{
		ID:            uuid.New().String(),
		TenantID:      TestTenant,
		ProjectID:     projectID,
		Category:      category,
		BudgetedCents: 10_000_00,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChangeOrder options
type ChangeOrderOption func(*domain.ChangeOrder)

func WithOrderStatus(s domain.ChangeOrderStatus) ChangeOrderOption {
	return func(c *domain.ChangeOrder) {
		c.Status = s
	}
}

func WithReason(reason string) ChangeOrderOption {
	return func(c *domain.ChangeOrder) {
		c.Reason = reason
	}
}

func NewTestChangeOrder(p *domain.Project, amountCents int64, opts ...ChangeOrderOption) *domain.ChangeOrder {
	now := time.Now().UTC()
	c := &domain.ChangeOrder{
		ID:                  uuid.New().String(),
		TenantID:            p.TenantID,
		ProjectID:           p.ID,
		Reason:              "scope change",
		AmountChangeCents:   amountCents,
		Status:              domain.ChangeOrderPending,
		OriginalBudgetCents: p.CurrentBudgetCents,
		NewBudgetCents:      p.CurrentBudgetCents + amountCents,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
