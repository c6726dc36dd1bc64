package budget

import (
	"testing"

	"costbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSummarize_TotalsAndVariance(t *testing.T) {
	p := &domain.Project{ID: "proj-1", CurrentBudgetCents: 100_000_00}

	items := []*domain.CostItem{
		{ID: "c1", BudgetedCents: 40_000_00, CommittedCents: 35_000_00, ActualCents: 20_000_00},
		{ID: "c2", BudgetedCents: 30_000_00, CommittedCents: 25_000_00, ActualCents: 26_000_00},
	}

	s := Summarize(p, nil, items)

	assert.Equal(t, int64(70_000_00), s.TotalBudgetedCents)
	assert.Equal(t, int64(60_000_00), s.TotalCommittedCents)
	assert.Equal(t, int64(46_000_00), s.TotalActualCents)
	assert.Equal(t, int64(40_000_00), s.VarianceCents, "variance = current budget - committed")
}

func TestSummarize_NegativeVariance(t *testing.T) {
	p := &domain.Project{ID: "proj-1", CurrentBudgetCents: 10_000_00}
	items := []*domain.CostItem{
		{ID: "c1", CommittedCents: 15_000_00},
	}

	s := Summarize(p, nil, items)
	assert.Equal(t, int64(-5_000_00), s.VarianceCents)
}

func TestSummarize_PhaseBuckets(t *testing.T) {
	p := &domain.Project{ID: "proj-1", CurrentBudgetCents: 100_000_00}
	phases := []*domain.Phase{
		{ID: "ph-demo", Name: "Demolition"},
		{ID: "ph-frame", Name: "Framing"},
	}
	items := []*domain.CostItem{
		{ID: "c1", PhaseID: strPtr("ph-demo"), BudgetedCents: 10_000_00, ActualCents: 9_000_00},
		{ID: "c2", PhaseID: strPtr("ph-demo"), BudgetedCents: 5_000_00},
		{ID: "c3", PhaseID: strPtr("ph-frame"), BudgetedCents: 20_000_00},
		{ID: "c4", BudgetedCents: 1_000_00},
	}

	s := Summarize(p, phases, items)

	require.Len(t, s.Phases, 3, "two phases plus the unassigned bucket")

	assert.Equal(t, "ph-demo", s.Phases[0].PhaseID)
	assert.Equal(t, int64(15_000_00), s.Phases[0].BudgetedCents)
	assert.Equal(t, 2, s.Phases[0].ItemCount)

	assert.Equal(t, "ph-frame", s.Phases[1].PhaseID)
	assert.Equal(t, int64(20_000_00), s.Phases[1].BudgetedCents)

	assert.Equal(t, "", s.Phases[2].PhaseID)
	assert.Equal(t, UnassignedPhaseName, s.Phases[2].PhaseName)
	assert.Equal(t, int64(1_000_00), s.Phases[2].BudgetedCents)
	assert.Equal(t, 1, s.Phases[2].ItemCount)
}

func TestSummarize_EmptyPhaseStillListed(t *testing.T) {
	p := &domain.Project{ID: "proj-1"}
	phases := []*domain.Phase{{ID: "ph-1", Name: "Punch list"}}

	s := Summarize(p, phases, nil)

	require.Len(t, s.Phases, 1)
	assert.Equal(t, 0, s.Phases[0].ItemCount)
	assert.Equal(t, "Punch list", s.Phases[0].PhaseName)
}

func TestSummarize_NoUnassignedBucketWhenAllTagged(t *testing.T) {
	p := &domain.Project{ID: "proj-1"}
	phases := []*domain.Phase{{ID: "ph-1", Name: "Demo"}}
	items := []*domain.CostItem{
		{ID: "c1", PhaseID: strPtr("ph-1"), BudgetedCents: 100},
	}

	s := Summarize(p, phases, items)
	require.Len(t, s.Phases, 1)
}

func TestSummarize_ItemWithDanglingPhaseFallsToUnassigned(t *testing.T) {
	// An item can briefly reference a phase missing from the loaded set;
	// it must land in the unassigned bucket rather than vanish.
	p := &domain.Project{ID: "proj-1"}
	items := []*domain.CostItem{
		{ID: "c1", PhaseID: strPtr("ph-gone"), BudgetedCents: 100},
	}

	s := Summarize(p, nil, items)
	require.Len(t, s.Phases, 1)
	assert.Equal(t, UnassignedPhaseName, s.Phases[0].PhaseName)
	assert.Equal(t, int64(100), s.Phases[0].BudgetedCents)
}

func TestSummarize_Deterministic(t *testing.T) {
	p := &domain.Project{ID: "proj-1", CurrentBudgetCents: 50_000_00}
	phases := []*domain.Phase{
		{ID: "ph-a", Name: "A"},
		{ID: "ph-b", Name: "B"},
	}
	items := []*domain.CostItem{
		{ID: "c1", PhaseID: strPtr("ph-b"), BudgetedCents: 1},
		{ID: "c2", PhaseID: strPtr("ph-a"), BudgetedCents: 2},
	}

	first := Summarize(p, phases, items)
	second := Summarize(p, phases, items)
	assert.Equal(t, first, second)
}
