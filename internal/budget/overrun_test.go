package budget

import (
	"testing"

	"costbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckOverrun_WithinCommitment(t *testing.T) {
	item := &domain.CostItem{CommittedCents: 10_000_00, ActualCents: 9_500_00}
	assert.Nil(t, CheckOverrun(item, 5))
}

func TestCheckOverrun_WithinTolerance(t *testing.T) {
	// 5% of 10,000.00 = 500.00 of slack.
	item := &domain.CostItem{CommittedCents: 10_000_00, ActualCents: 10_400_00}
	assert.Nil(t, CheckOverrun(item, 5))
}

func TestCheckOverrun_BeyondTolerance(t *testing.T) {
	item := &domain.CostItem{ID: "c1", CommittedCents: 10_000_00, ActualCents: 10_600_00}

	o := CheckOverrun(item, 5)
	require.NotNil(t, o)
	assert.Equal(t, int64(600_00), o.OverCents)
	assert.Equal(t, int64(500_00), o.ToleranceCents)
	assert.Equal(t, "c1", o.Item.ID)
}

func TestCheckOverrun_ZeroCommitment(t *testing.T) {
	// Nothing committed means any spend is an overrun, tolerance or not.
	item := &domain.CostItem{CommittedCents: 0, ActualCents: 1_00}
	o := CheckOverrun(item, 10)
	require.NotNil(t, o)
	assert.Equal(t, int64(1_00), o.OverCents)
}

func TestCheckOverrun_ZeroTolerance(t *testing.T) {
	item := &domain.CostItem{CommittedCents: 100_00, ActualCents: 101_00}
	o := CheckOverrun(item, 0)
	require.NotNil(t, o)
	assert.Equal(t, int64(1_00), o.OverCents)
}

func TestOverruns_PreservesOrder(t *testing.T) {
	items := []*domain.CostItem{
		{ID: "ok", CommittedCents: 100_00, ActualCents: 50_00},
		{ID: "over-1", CommittedCents: 100_00, ActualCents: 200_00},
		{ID: "over-2", CommittedCents: 0, ActualCents: 10_00},
	}

	out := Overruns(items, 5)
	require.Len(t, out, 2)
	assert.Equal(t, "over-1", out[0].Item.ID)
	assert.Equal(t, "over-2", out[1].Item.ID)
}
