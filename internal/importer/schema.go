package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for project import.
type ImportSchema struct {
	Project   ProjectImport    `json:"project"`
	Phases    []PhaseImport    `json:"phases,omitempty"`
	CostItems []CostItemImport `json:"cost_items,omitempty"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	Name                   string `json:"name"`
	OriginalBudgetCents    int64  `json:"original_budget_cents"`
	RequiresApproval       bool   `json:"requires_approval,omitempty"`
	ApprovalThresholdCents *int64 `json:"approval_threshold_cents,omitempty"`
}

// PhaseImport defines a phase in the import file. Refs are file-local
// identifiers used to wire cost items and dependencies; they are replaced by
// generated ids at conversion.
type PhaseImport struct {
	Ref          string  `json:"ref"`
	Name         string  `json:"name"`
	Order        int     `json:"order"`
	BudgetCents  *int64  `json:"budget_cents,omitempty"`
	DependsOnRef *string `json:"depends_on_ref,omitempty"`
}

// CostItemImport defines a cost item in the import file.
type CostItemImport struct {
	PhaseRef       *string `json:"phase_ref,omitempty"`
	Category       string  `json:"category"`
	BudgetedCents  int64   `json:"budgeted_cents"`
	CommittedCents int64   `json:"committed_cents,omitempty"`
	ActualCents    int64   `json:"actual_cents,omitempty"`
}

// LoadImportSchema reads and parses a project import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
