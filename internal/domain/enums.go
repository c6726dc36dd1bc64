package domain

type ProjectStatus string

const (
	ProjectDraft    ProjectStatus = "draft"
	ProjectApproved ProjectStatus = "approved"
)

type ChangeOrderStatus string

const (
	ChangeOrderPending  ChangeOrderStatus = "pending"
	ChangeOrderApproved ChangeOrderStatus = "approved"
	ChangeOrderRejected ChangeOrderStatus = "rejected"
)

// ValidCostCategories is the canonical set of accepted cost item categories.
var ValidCostCategories = map[string]bool{
	"labor": true, "materials": true, "equipment": true,
	"subcontract": true, "permits": true, "overhead": true,
	"contingency": true, "other": true,
}
