package formatter

import (
	"fmt"
	"strings"

	"costbook/internal/budget"
	"costbook/internal/domain"
)

// Summary renders the full roll-up view: project header, totals, per-phase
// subtotals and any advisory overruns.
func Summary(p *domain.Project, rollup budget.Summary, overruns []budget.Overrun, driftCents *int64) string {
	var b strings.Builder

	b.WriteString(Header(p.Name + " — budget summary"))
	b.WriteString("\n")

	write := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-18s", label)), value))
	}

	write("Current budget", Bold(FormatMoney(p.CurrentBudgetCents)))
	write("Budgeted", FormatMoney(rollup.TotalBudgetedCents))
	write("Committed", FormatMoney(rollup.TotalCommittedCents))
	write("Actual", FormatMoney(rollup.TotalActualCents))
	write("Variance", MoneyStyled(rollup.VarianceCents))
	if driftCents != nil {
		write("Drift", MoneyStyled(*driftCents))
	}

	if len(rollup.Phases) > 0 {
		b.WriteString("\n")
		headers := []string{"PHASE", "ITEMS", "BUDGETED", "COMMITTED", "ACTUAL"}
		rows := make([][]string, 0, len(rollup.Phases))
		for _, ph := range rollup.Phases {
			name := ph.PhaseName
			if name == budget.UnassignedPhaseName {
				name = Dim(name)
			}
			rows = append(rows, []string{
				name,
				fmt.Sprintf("%d", ph.ItemCount),
				FormatMoney(ph.BudgetedCents),
				FormatMoney(ph.CommittedCents),
				FormatMoney(ph.ActualCents),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if len(overruns) > 0 {
		b.WriteString("\n")
		b.WriteString(Warn(fmt.Sprintf("%d cost item(s) over committed amounts:", len(overruns))))
		b.WriteString("\n")
		for _, o := range overruns {
			b.WriteString(fmt.Sprintf("  %s %s over (tolerance %s)\n",
				Dim(o.Item.Category+":"),
				StyleRed.Render(FormatMoney(o.OverCents)),
				FormatMoney(o.ToleranceCents)))
		}
	}

	return b.String()
}

// PhaseList renders a table of phases.
func PhaseList(phases []*domain.Phase) string {
	if len(phases) == 0 {
		return Dim("No phases.")
	}

	headers := []string{"ID", "ORDER", "NAME", "BUDGET", "DEPENDS ON"}
	rows := make([][]string, 0, len(phases))
	for _, ph := range phases {
		budgetStr := Dim("—")
		if ph.BudgetCents != nil {
			budgetStr = FormatMoney(*ph.BudgetCents)
		}
		depends := Dim("—")
		if ph.DependsOnPhaseID != nil {
			depends = Dim(ShortID(*ph.DependsOnPhaseID))
		}
		rows = append(rows, []string{
			Dim(ShortID(ph.ID)),
			fmt.Sprintf("%d", ph.OrderIndex),
			ph.Name,
			budgetStr,
			depends,
		})
	}
	return RenderTable(headers, rows)
}

// CostItemList renders a table of cost items.
func CostItemList(items []*domain.CostItem) string {
	if len(items) == 0 {
		return Dim("No cost items.")
	}

	headers := []string{"ID", "CATEGORY", "PHASE", "BUDGETED", "COMMITTED", "ACTUAL"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		phase := Dim("—")
		if it.PhaseID != nil {
			phase = Dim(ShortID(*it.PhaseID))
		}
		actual := FormatMoney(it.ActualCents)
		if it.OverspendCents() > 0 {
			actual = StyleRed.Render(actual)
		}
		rows = append(rows, []string{
			Dim(ShortID(it.ID)),
			it.Category,
			phase,
			FormatMoney(it.BudgetedCents),
			FormatMoney(it.CommittedCents),
			actual,
		})
	}
	return RenderTable(headers, rows)
}
