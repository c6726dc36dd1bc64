package cli

import (
	"github.com/spf13/cobra"

	"costbook/internal/domain"
	"costbook/internal/service"
)

// App holds references to all service interfaces used by CLI commands, plus
// the identity defaults resolved from config.
type App struct {
	Projects  service.ProjectService
	Phases    service.PhaseService
	CostItems service.CostItemService
	Orders    service.ChangeOrderService
	Summaries service.SummaryService
	Imports   service.ImportService

	DefaultTenant string
	DefaultActor  string

	tenantFlag string
	actorFlag  string
}

// Actor resolves the acting identity for a command invocation: flag values
// win over config defaults.
func (a *App) Actor() domain.Actor {
	tenant := a.DefaultTenant
	if a.tenantFlag != "" {
		tenant = a.tenantFlag
	}
	user := a.DefaultActor
	if a.actorFlag != "" {
		user = a.actorFlag
	}
	if user == "" {
		user = "local"
	}
	return domain.Actor{TenantID: tenant, UserID: user}
}

// NewRootCmd creates the top-level "costbook" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "costbook",
		Short: "Project budget and change-order tracker",
	}

	root.PersistentFlags().StringVar(&app.tenantFlag, "tenant", "", "Tenant to act under (default from config)")
	root.PersistentFlags().StringVar(&app.actorFlag, "actor", "", "User performing the operation (default from config)")

	root.AddCommand(
		newProjectCmd(app),
		newPhaseCmd(app),
		newCostCmd(app),
		newOrderCmd(app),
	)

	return root
}
