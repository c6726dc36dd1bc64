package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"costbook/internal/budget"
	"costbook/internal/cli/formatter"
	"costbook/internal/domain"
)

func newCostCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Manage cost items",
	}

	cmd.AddCommand(
		newCostAddCmd(app),
		newCostListCmd(app),
		newCostUpdateCmd(app),
		newCostRemoveCmd(app),
	)

	return cmd
}

func printOverrunWarning(warn *budget.Overrun) {
	if warn == nil {
		return
	}
	fmt.Println(formatter.Warn(fmt.Sprintf(
		"actual exceeds committed by %s (tolerance %s)",
		formatter.FormatMoney(warn.OverCents),
		formatter.FormatMoney(warn.ToleranceCents))))
}

func newCostAddCmd(app *App) *cobra.Command {
	var project, phaseID, category string
	var budgetedCents, committedCents, actualCents int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a cost item on a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			c := &domain.CostItem{
				ProjectID:      projectID,
				Category:       category,
				BudgetedCents:  budgetedCents,
				CommittedCents: committedCents,
				ActualCents:    actualCents,
			}
			if phaseID != "" {
				c.PhaseID = &phaseID
			}

			warn, err := app.CostItems.Create(ctx, app.Actor(), c)
			if err != nil {
				return err
			}

			fmt.Printf("Added %s cost item [%s]\n", c.Category, formatter.ShortID(c.ID))
			printOverrunWarning(warn)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Owning project")
	cmd.Flags().StringVar(&phaseID, "phase", "", "Phase to attach the item to")
	cmd.Flags().StringVar(&category, "category", "", "Cost category (labor, materials, equipment, ...)")
	cmd.Flags().Int64Var(&budgetedCents, "budgeted", 0, "Budgeted amount in cents")
	cmd.Flags().Int64Var(&committedCents, "committed", 0, "Committed amount in cents")
	cmd.Flags().Int64Var(&actualCents, "actual", 0, "Actual amount in cents")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newCostListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's cost items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			items, err := app.CostItems.ListByProject(ctx, app.Actor(), projectID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.CostItemList(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Owning project")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newCostUpdateCmd(app *App) *cobra.Command {
	var phaseID, category string
	var budgetedCents, committedCents, actualCents int64

	cmd := &cobra.Command{
		Use:   "update <cost-item-id>",
		Short: "Update a cost item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := app.CostItems.GetByID(ctx, app.Actor(), args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("category") {
				c.Category = category
			}
			if cmd.Flags().Changed("phase") {
				if phaseID == "" {
					c.PhaseID = nil
				} else {
					c.PhaseID = &phaseID
				}
			}
			if cmd.Flags().Changed("budgeted") {
				c.BudgetedCents = budgetedCents
			}
			if cmd.Flags().Changed("committed") {
				c.CommittedCents = committedCents
			}
			if cmd.Flags().Changed("actual") {
				c.ActualCents = actualCents
			}

			warn, err := app.CostItems.Update(ctx, app.Actor(), c)
			if err != nil {
				return err
			}

			fmt.Printf("Updated %s cost item [%s]\n", c.Category, formatter.ShortID(c.ID))
			printOverrunWarning(warn)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Cost category")
	cmd.Flags().StringVar(&phaseID, "phase", "", "Phase to attach the item to (empty detaches)")
	cmd.Flags().Int64Var(&budgetedCents, "budgeted", 0, "Budgeted amount in cents")
	cmd.Flags().Int64Var(&committedCents, "committed", 0, "Committed amount in cents")
	cmd.Flags().Int64Var(&actualCents, "actual", 0, "Actual amount in cents")

	return cmd
}

func newCostRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <cost-item-id>",
		Short: "Remove a cost item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.CostItems.Delete(context.Background(), app.Actor(), args[0]); err != nil {
				return err
			}
			fmt.Println("Removed cost item")
			return nil
		},
	}
	return cmd
}
