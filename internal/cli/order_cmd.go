package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"costbook/internal/cli/formatter"
	"costbook/internal/service"
)

func newOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Propose and decide change orders",
	}

	cmd.AddCommand(
		newOrderProposeCmd(app),
		newOrderListCmd(app),
		newOrderInspectCmd(app),
		newOrderApproveCmd(app),
		newOrderRejectCmd(app),
	)

	return cmd
}

func newOrderProposeCmd(app *App) *cobra.Command {
	var project, reason, description string
	var amountCents int64

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Propose a budget change on a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			res, err := app.Orders.Propose(ctx, app.Actor(), projectID, reason, description, amountCents)
			if err != nil {
				return err
			}

			o := res.Order
			fmt.Printf("Proposed change order [%s]: %s, %s -> %s\n",
				formatter.ShortID(o.ID),
				formatter.FormatMoneySigned(o.AmountChangeCents),
				formatter.FormatMoney(o.OriginalBudgetCents),
				formatter.FormatMoney(o.NewBudgetCents))
			if res.NeedsSecondApproval {
				fmt.Println(formatter.Warn("amount exceeds the project's approval threshold, a second approval is recommended"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project the change applies to")
	cmd.Flags().StringVar(&reason, "reason", "", "Why the budget should change")
	cmd.Flags().StringVar(&description, "description", "", "Longer free-form description")
	cmd.Flags().Int64Var(&amountCents, "amount", 0, "Signed budget delta in cents")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("reason")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newOrderListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's change orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			orders, err := app.Orders.ListByProject(ctx, app.Actor(), projectID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.OrderList(orders))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Owning project")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newOrderInspectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <order-id>",
		Short: "Show a change order's full details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := app.Orders.GetByID(context.Background(), app.Actor(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.OrderDetail(o))
			return nil
		},
	}
	return cmd
}

func newOrderApproveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve <order-id>",
		Short: "Approve a pending change order and apply it to the budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Orders.Approve(context.Background(), app.Actor(), args[0])
			if err != nil {
				var partial *service.PartialApplyError
				if errors.As(err, &partial) {
					fmt.Println(formatter.Warn(fmt.Sprintf(
						"change order %s is approved, but the budget write did not land (target %s)",
						formatter.ShortID(partial.ChangeOrderID),
						formatter.FormatMoney(partial.TargetBudgetCents))))
					fmt.Println(formatter.Dim("The decision stands; reconcile the project budget to the target shown above."))
					return err
				}
				return err
			}
			fmt.Printf("Approved change order; project budget is now %s\n",
				formatter.FormatMoney(p.CurrentBudgetCents))
			return nil
		},
	}
	return cmd
}

func newOrderRejectCmd(app *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reject <order-id>",
		Short: "Reject a pending change order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := app.Orders.Reject(context.Background(), app.Actor(), args[0], reason)
			if err != nil {
				return err
			}
			fmt.Printf("Rejected change order [%s]; the budget is unchanged\n", formatter.ShortID(o.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the change order is rejected")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}
