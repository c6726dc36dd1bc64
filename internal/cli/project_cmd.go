package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"costbook/internal/cli/formatter"
	"costbook/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectApproveCmd(app),
		newProjectRemoveCmd(app),
		newProjectSummaryCmd(app),
		newProjectImportCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name string
	var budgetCents, thresholdCents int64
	var requiresApproval bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				Name:                name,
				OriginalBudgetCents: budgetCents,
				RequiresApproval:    requiresApproval,
			}
			if cmd.Flags().Changed("approval-threshold") {
				p.ApprovalThresholdCents = &thresholdCents
			}

			if err := app.Projects.Create(context.Background(), app.Actor(), p); err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s] with budget %s\n",
				p.Name, formatter.ShortID(p.ID), formatter.FormatMoney(p.OriginalBudgetCents))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().Int64Var(&budgetCents, "budget", 0, "Original budget in cents")
	cmd.Flags().BoolVar(&requiresApproval, "requires-approval", false, "Flag large change orders for second approval")
	cmd.Flags().Int64Var(&thresholdCents, "approval-threshold", 0, "Second-approval threshold in cents")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("budget")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background(), app.Actor())
			if err != nil {
				return err
			}
			fmt.Println(formatter.ProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <project>",
		Short: "Show a project's full details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, app.Actor(), id)
			if err != nil {
				return err
			}
			fmt.Println(formatter.ProjectDetail(p))
			return nil
		},
	}
	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name string
	var thresholdCents int64
	var requiresApproval bool

	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Update a project's name or approval policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, app.Actor(), id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("requires-approval") {
				p.RequiresApproval = requiresApproval
			}
			if cmd.Flags().Changed("approval-threshold") {
				p.ApprovalThresholdCents = &thresholdCents
			}

			if err := app.Projects.UpdateMeta(ctx, app.Actor(), p); err != nil {
				return err
			}
			fmt.Printf("Updated project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	cmd.Flags().BoolVar(&requiresApproval, "requires-approval", false, "Flag large change orders for second approval")
	cmd.Flags().Int64Var(&thresholdCents, "approval-threshold", 0, "Second-approval threshold in cents")

	return cmd
}

func newProjectApproveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <project>",
		Short: "Approve a draft project, locking in the approved budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.Approve(ctx, app.Actor(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Approved project %s at %s\n",
				p.Name, formatter.FormatMoney(*p.ApprovedBudgetCents))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <project>",
		Short: "Delete a project and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, app.Actor(), id, force); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", formatter.ShortID(id))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even with pending change orders")

	return cmd
}

func newProjectSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <project>",
		Short: "Show the budget roll-up for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Summaries.ProjectSummary(ctx, app.Actor(), id)
			if err != nil {
				return err
			}
			fmt.Println(formatter.Summary(s.Project, s.Rollup, s.Overruns, s.DriftCents))
			return nil
		},
	}
}

func newProjectImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a project with phases and cost items from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Imports.ImportProject(context.Background(), app.Actor(), args[0])
			if err != nil {
				if errors.Is(err, domain.ErrValidation) {
					return fmt.Errorf("import aborted, nothing was written:\n%w", err)
				}
				return err
			}
			fmt.Printf("Imported project %s [%s]: %d phases, %d cost items\n",
				res.Project.Name, formatter.ShortID(res.Project.ID),
				res.PhaseCount, res.CostItemCount)
			return nil
		},
	}
	return cmd
}
