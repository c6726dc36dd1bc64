package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"costbook/internal/cli"
	"costbook/internal/config"
	"costbook/internal/db"
	"costbook/internal/repository"
	"costbook/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Plain output when piped or redirected
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	database, err := db.OpenDB(cfg.General.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	costItemRepo := repository.NewSQLiteCostItemRepo(database)
	orderRepo := repository.NewSQLiteChangeOrderRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.OperationObserver
	if cfg.Logging.Operations {
		observers = append(observers, service.NewLogOperationObserver(os.Stderr))
	}

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo, orderRepo, observers...),
		Phases:    service.NewPhaseService(phaseRepo, projectRepo, uow),
		CostItems: service.NewCostItemService(costItemRepo, projectRepo, cfg.Budget.OverrunTolerancePct),
		Orders:    service.NewChangeOrderService(orderRepo, projectRepo, cfg.Budget.BudgetWriteAttempts, observers...),
		Summaries: service.NewSummaryService(projectRepo, phaseRepo, costItemRepo, cfg.Budget.OverrunTolerancePct),
		Imports:   service.NewImportService(uow, observers...),

		DefaultTenant: cfg.General.DefaultTenant,
		DefaultActor:  cfg.General.DefaultActor,
	}

	return cli.NewRootCmd(app).Execute()
}
