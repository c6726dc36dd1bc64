package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costbook/internal/domain"
)

func TestConvert_FullSchema(t *testing.T) {
	schema := validSchema()
	generated, err := Convert(schema, "tenant-a")
	require.NoError(t, err)

	p := generated.Project
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "tenant-a", p.TenantID)
	assert.Equal(t, domain.ProjectDraft, p.Status)
	assert.Equal(t, int64(100_000_00), p.OriginalBudgetCents)
	assert.Equal(t, int64(100_000_00), p.CurrentBudgetCents)
	assert.Equal(t, int64(1), p.BudgetVersion)

	require.Len(t, generated.Phases, 2)
	first, second := generated.Phases[0], generated.Phases[1]
	assert.Equal(t, p.ID, first.ProjectID)
	assert.Equal(t, "Groundwork", first.Name)
	require.NotNil(t, first.BudgetCents)
	assert.Equal(t, int64(40_000_00), *first.BudgetCents)
	require.NotNil(t, second.DependsOnPhaseID)
	assert.Equal(t, first.ID, *second.DependsOnPhaseID)

	require.Len(t, generated.CostItems, 2)
	tagged, loose := generated.CostItems[0], generated.CostItems[1]
	require.NotNil(t, tagged.PhaseID)
	assert.Equal(t, first.ID, *tagged.PhaseID)
	assert.Equal(t, "labor", tagged.Category)
	assert.Nil(t, loose.PhaseID)
	assert.Equal(t, "tenant-a", loose.TenantID)
}

func TestConvert_ForwardDependencyRef(t *testing.T) {
	schema := &ImportSchema{
		Project: ProjectImport{Name: "Forward", OriginalBudgetCents: 1_000_00},
		Phases: []PhaseImport{
			{Ref: "a", Name: "A", Order: 1, DependsOnRef: strPtr("b")},
			{Ref: "b", Name: "B", Order: 2},
		},
	}
	require.Empty(t, ValidateImportSchema(schema))

	generated, err := Convert(schema, "tenant-a")
	require.NoError(t, err)
	require.NotNil(t, generated.Phases[0].DependsOnPhaseID)
	assert.Equal(t, generated.Phases[1].ID, *generated.Phases[0].DependsOnPhaseID)
}

func TestConvert_InvalidProject(t *testing.T) {
	schema := validSchema()
	schema.Project.OriginalBudgetCents = -1
	_, err := Convert(schema, "tenant-a")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
