package formatter

import (
	"fmt"
	"strings"

	"costbook/internal/domain"
)

// ProjectList renders a table of projects.
func ProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects yet. Create one with: costbook project add")
	}

	headers := []string{"ID", "NAME", "STATUS", "ORIGINAL", "CURRENT", "DRIFT"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		drift := Dim("—")
		if p.ApprovedBudgetCents != nil {
			drift = MoneyStyled(p.BudgetDriftCents())
		}
		rows = append(rows, []string{
			Dim(ShortID(p.ID)),
			p.Name,
			ProjectStatusPill(p.Status),
			FormatMoney(p.OriginalBudgetCents),
			Bold(FormatMoney(p.CurrentBudgetCents)),
			drift,
		})
	}
	return RenderTable(headers, rows)
}

// ProjectDetail renders a full inspect view for one project.
func ProjectDetail(p *domain.Project) string {
	var b strings.Builder

	b.WriteString(Header(p.Name))
	b.WriteString("\n")

	write := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-18s", label)), value))
	}

	write("ID", p.ID)
	write("Status", ProjectStatusPill(p.Status))
	write("Original budget", FormatMoney(p.OriginalBudgetCents))
	write("Current budget", Bold(FormatMoney(p.CurrentBudgetCents)))

	if p.ApprovedBudgetCents != nil {
		write("Approved budget", FormatMoney(*p.ApprovedBudgetCents))
		write("Drift", MoneyStyled(p.BudgetDriftCents()))
	}
	if p.ApprovedBy != nil {
		approved := *p.ApprovedBy
		if p.ApprovedAt != nil {
			approved += Dim(" on " + p.ApprovedAt.Format("2006-01-02"))
		}
		write("Approved by", approved)
	}
	if p.RequiresApproval {
		threshold := "any amount"
		if p.ApprovalThresholdCents != nil {
			threshold = "over " + FormatMoney(*p.ApprovalThresholdCents)
		}
		write("Second approval", threshold)
	}
	write("Budget version", fmt.Sprintf("%d", p.BudgetVersion))

	return b.String()
}

// OrderList renders a table of change orders.
func OrderList(orders []*domain.ChangeOrder) string {
	if len(orders) == 0 {
		return Dim("No change orders.")
	}

	headers := []string{"ID", "REASON", "AMOUNT", "STATUS", "BASELINE", "PROPOSED"}
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			Dim(ShortID(o.ID)),
			o.Reason,
			MoneyStyled(o.AmountChangeCents),
			OrderStatusPill(o.Status),
			FormatMoney(o.OriginalBudgetCents),
			FormatMoney(o.NewBudgetCents),
		})
	}
	return RenderTable(headers, rows)
}

// OrderDetail renders a full inspect view for one change order.
func OrderDetail(o *domain.ChangeOrder) string {
	var b strings.Builder

	b.WriteString(Header("Change order"))
	b.WriteString("\n")

	write := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-18s", label)), value))
	}

	write("ID", o.ID)
	write("Project", o.ProjectID)
	write("Reason", o.Reason)
	if o.Description != "" {
		write("Description", o.Description)
	}
	write("Amount", MoneyStyled(o.AmountChangeCents))
	write("Status", OrderStatusPill(o.Status))
	write("Baseline budget", FormatMoney(o.OriginalBudgetCents))
	write("Proposed budget", FormatMoney(o.NewBudgetCents))
	if o.Status == domain.ChangeOrderRejected && o.RejectionReason != "" {
		write("Rejection reason", o.RejectionReason)
	}
	if o.DecidedBy != nil {
		decided := *o.DecidedBy
		if o.DecidedAt != nil {
			decided += Dim(" on " + o.DecidedAt.Format("2006-01-02"))
		}
		write("Decided by", decided)
	}

	return b.String()
}
