package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_Validate(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		wantErr bool
	}{
		{"valid", Project{TenantID: "t1", Name: "Lobby remodel", OriginalBudgetCents: 100_000_00}, false},
		{"zero budget ok", Project{TenantID: "t1", Name: "Pro bono"}, false},
		{"missing tenant", Project{Name: "X", OriginalBudgetCents: 1}, true},
		{"missing name", Project{TenantID: "t1", OriginalBudgetCents: 1}, true},
		{"negative budget", Project{TenantID: "t1", Name: "X", OriginalBudgetCents: -1}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.project.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProject_Approve_SnapshotsCurrentBudget(t *testing.T) {
	p := &Project{
		TenantID:            "t1",
		Name:                "Remodel",
		Status:              ProjectDraft,
		OriginalBudgetCents: 100_000_00,
		CurrentBudgetCents:  105_000_00,
	}

	at := time.Now().UTC()
	require.NoError(t, p.Approve("user-7", at))

	assert.Equal(t, ProjectApproved, p.Status)
	require.NotNil(t, p.ApprovedBudgetCents)
	assert.Equal(t, int64(105_000_00), *p.ApprovedBudgetCents)
	require.NotNil(t, p.ApprovedBy)
	assert.Equal(t, "user-7", *p.ApprovedBy)

	// Budget drift after approval never alters the snapshot.
	p.CurrentBudgetCents = 115_000_00
	assert.Equal(t, int64(105_000_00), *p.ApprovedBudgetCents)
	assert.Equal(t, int64(10_000_00), p.BudgetDriftCents())
}

func TestProject_Approve_NotDraft(t *testing.T) {
	p := &Project{Status: ProjectApproved}
	err := p.Approve("user-7", time.Now().UTC())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestProject_NeedsSecondApproval(t *testing.T) {
	threshold := int64(10_000_00)

	gated := &Project{RequiresApproval: true, ApprovalThresholdCents: &threshold}
	assert.False(t, gated.NeedsSecondApproval(10_000_00), "at threshold is allowed")
	assert.True(t, gated.NeedsSecondApproval(10_000_01))
	assert.True(t, gated.NeedsSecondApproval(-15_000_00), "magnitude counts, not sign")

	ungated := &Project{RequiresApproval: false, ApprovalThresholdCents: &threshold}
	assert.False(t, ungated.NeedsSecondApproval(50_000_00))

	noThreshold := &Project{RequiresApproval: true}
	assert.False(t, noThreshold.NeedsSecondApproval(50_000_00))
}
