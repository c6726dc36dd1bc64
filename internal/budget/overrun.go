package budget

import (
	"costbook/internal/domain"
)

// Overrun flags a cost item whose actual spend exceeds its committed amount
// by more than the configured tolerance. Overruns are advisory warnings, not
// rejections: cost data often arrives before commitments are finalized.
type Overrun struct {
	Item           *domain.CostItem
	OverCents      int64
	ToleranceCents int64
}

// CheckOverrun evaluates one cost item against the tolerance, expressed as a
// percentage of the committed amount. Returns nil when the item is within
// tolerance.
func CheckOverrun(item *domain.CostItem, tolerancePct float64) *Overrun {
	over := item.OverspendCents()
	if over == 0 {
		return nil
	}
	tolerance := int64(float64(item.CommittedCents) * tolerancePct / 100)
	if over <= tolerance {
		return nil
	}
	return &Overrun{Item: item, OverCents: over, ToleranceCents: tolerance}
}

// Overruns evaluates all items, preserving input order.
func Overruns(items []*domain.CostItem, tolerancePct float64) []Overrun {
	var out []Overrun
	for _, item := range items {
		if o := CheckOverrun(item, tolerancePct); o != nil {
			out = append(out, *o)
		}
	}
	return out
}
