package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"costbook/internal/cli/formatter"
	"costbook/internal/domain"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage project phases",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseListCmd(app),
		newPhaseUpdateCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var project, name, dependsOn string
	var order int
	var budgetCents int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a phase to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			p := &domain.Phase{
				ProjectID:  projectID,
				Name:       name,
				OrderIndex: order,
			}
			if cmd.Flags().Changed("budget") {
				p.BudgetCents = &budgetCents
			}
			if dependsOn != "" {
				p.DependsOnPhaseID = &dependsOn
			}

			if err := app.Phases.Create(ctx, app.Actor(), p); err != nil {
				return err
			}

			fmt.Printf("Added phase %s [%s]\n", p.Name, formatter.ShortID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Owning project")
	cmd.Flags().StringVar(&name, "name", "", "Phase name")
	cmd.Flags().IntVar(&order, "order", 0, "Ordering index among sibling phases")
	cmd.Flags().Int64Var(&budgetCents, "budget", 0, "Optional phase budget in cents")
	cmd.Flags().StringVar(&dependsOn, "depends-on", "", "ID of a phase this one depends on")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's phases in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByProject(ctx, app.Actor(), projectID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.PhaseList(phases))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Owning project")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newPhaseUpdateCmd(app *App) *cobra.Command {
	var name, dependsOn string
	var order int
	var budgetCents int64

	cmd := &cobra.Command{
		Use:   "update <phase-id>",
		Short: "Update a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Phases.GetByID(ctx, app.Actor(), args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("order") {
				p.OrderIndex = order
			}
			if cmd.Flags().Changed("budget") {
				p.BudgetCents = &budgetCents
			}
			if cmd.Flags().Changed("depends-on") {
				if dependsOn == "" {
					p.DependsOnPhaseID = nil
				} else {
					p.DependsOnPhaseID = &dependsOn
				}
			}

			if err := app.Phases.Update(ctx, app.Actor(), p); err != nil {
				return err
			}
			fmt.Printf("Updated phase %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New phase name")
	cmd.Flags().IntVar(&order, "order", 0, "Ordering index among sibling phases")
	cmd.Flags().Int64Var(&budgetCents, "budget", 0, "Phase budget in cents")
	cmd.Flags().StringVar(&dependsOn, "depends-on", "", "ID of a phase this one depends on (empty clears)")

	return cmd
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <phase-id>",
		Short: "Remove a phase, detaching its cost items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detached, err := app.Phases.Delete(context.Background(), app.Actor(), args[0])
			if err != nil {
				return err
			}
			if detached > 0 {
				fmt.Printf("Removed phase, detached %d cost item(s)\n", detached)
			} else {
				fmt.Println("Removed phase")
			}
			return nil
		},
	}
	return cmd
}
