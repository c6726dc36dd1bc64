package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"costbook/internal/domain"
	"costbook/internal/repository"
	"costbook/internal/testutil"
)

// testEnv wires real SQLite-backed repositories and services for integration
// style service tests.
type testEnv struct {
	db       *sql.DB
	projects *repository.SQLiteProjectRepo
	phases   *repository.SQLitePhaseRepo
	items    *repository.SQLiteCostItemRepo
	orders   *repository.SQLiteChangeOrderRepo

	projectSvc ProjectService
	orderSvc   ChangeOrderService
	phaseSvc   PhaseService
	itemSvc    CostItemService
	summarySvc SummaryService
	importSvc  ImportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnvWithDB(t, testutil.NewTestDB(t))
}

func newEnvWithDB(t *testing.T, database *sql.DB) *testEnv {
	t.Helper()
	uow := testutil.NewTestUoW(database)

	projects := repository.NewSQLiteProjectRepo(database)
	phases := repository.NewSQLitePhaseRepo(database)
	items := repository.NewSQLiteCostItemRepo(database)
	orders := repository.NewSQLiteChangeOrderRepo(database)

	const tolerancePct = 10.0

	return &testEnv{
		db:         database,
		projects:   projects,
		phases:     phases,
		items:      items,
		orders:     orders,
		projectSvc: NewProjectService(projects, orders),
		orderSvc:   NewChangeOrderService(orders, projects, DefaultBudgetWriteAttempts),
		phaseSvc:   NewPhaseService(phases, projects, uow),
		itemSvc:    NewCostItemService(items, projects, tolerancePct),
		summarySvc: NewSummaryService(projects, phases, items, tolerancePct),
		importSvc:  NewImportService(uow),
	}
}

// createProject persists a draft project through the service and returns it.
func (e *testEnv) createProject(t *testing.T, ctx context.Context, name string, originalCents int64) *domain.Project {
	t.Helper()
	p := &domain.Project{Name: name, OriginalBudgetCents: originalCents}
	require.NoError(t, e.projectSvc.Create(ctx, testutil.TestActor(), p))
	return p
}
