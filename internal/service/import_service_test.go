package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costbook/internal/domain"
	"costbook/internal/importer"
	"costbook/internal/testutil"
)

func importFixture() *importer.ImportSchema {
	phaseBudget := int64(40_000_00)
	phaseRef := "groundwork"
	return &importer.ImportSchema{
		Project: importer.ProjectImport{
			Name:                "Imported Bridge",
			OriginalBudgetCents: 250_000_00,
		},
		Phases: []importer.PhaseImport{
			{Ref: "groundwork", Name: "Groundwork", Order: 1, BudgetCents: &phaseBudget},
			{Ref: "deck", Name: "Deck", Order: 2},
		},
		CostItems: []importer.CostItemImport{
			{PhaseRef: &phaseRef, Category: "labor", BudgetedCents: 30_000_00},
			{Category: "permits", BudgetedCents: 5_000_00},
		},
	}
}

func TestImportService_FromSchema(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := testutil.TestActor()

	result, err := env.importSvc.ImportProjectFromSchema(ctx, actor, importFixture())
	require.NoError(t, err)
	assert.Equal(t, 2, result.PhaseCount)
	assert.Equal(t, 2, result.CostItemCount)

	p, err := env.projectSvc.GetByID(ctx, actor, result.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Imported Bridge", p.Name)
	assert.Equal(t, domain.ProjectDraft, p.Status)
	assert.Equal(t, int64(250_000_00), p.CurrentBudgetCents)

	phases, err := env.phaseSvc.ListByProject(ctx, actor, p.ID)
	require.NoError(t, err)
	require.Len(t, phases, 2)

	items, err := env.itemSvc.ListByProject(ctx, actor, p.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestImportService_FromFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := testutil.TestActor()

	path := filepath.Join(t.TempDir(), "project.json")
	data := `{
		"project": {"name": "File Import", "original_budget_cents": 5000000},
		"phases": [{"ref": "p1", "name": "Only Phase", "order": 1}],
		"cost_items": [{"phase_ref": "p1", "category": "labor", "budgeted_cents": 100000}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	result, err := env.importSvc.ImportProject(ctx, actor, path)
	require.NoError(t, err)
	assert.Equal(t, "File Import", result.Project.Name)
	assert.Equal(t, 1, result.PhaseCount)
	assert.Equal(t, 1, result.CostItemCount)
}

func TestImportService_ValidationFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	schema := importFixture()
	schema.Project.Name = ""
	schema.CostItems[0].Category = "snacks"

	_, err := env.importSvc.ImportProjectFromSchema(ctx, testutil.TestActor(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
}

func TestImportService_RollbackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := testutil.TestActor()

	// Exec 1 inserts the project, execs 2-3 the phases; failing exec 4 (the
	// first cost item) must erase everything.
	injected := assert.AnError
	failingUoW := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 4, Err: injected}
	svc := NewImportService(failingUoW)

	_, err := svc.ImportProjectFromSchema(ctx, actor, importFixture())
	require.ErrorIs(t, err, injected)

	projects, err := env.projectSvc.List(ctx, actor)
	require.NoError(t, err)
	assert.Empty(t, projects, "rollback must leave no half-imported project")
}
