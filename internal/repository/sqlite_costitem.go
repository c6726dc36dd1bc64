package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"costbook/internal/db"
	"costbook/internal/domain"
)

const costItemColumns = `id, tenant_id, project_id, phase_id, category,
		budgeted_cents, committed_cents, actual_cents, created_at, updated_at`

// SQLiteCostItemRepo implements CostItemRepo using a SQLite database.
type SQLiteCostItemRepo struct {
	db db.DBTX
}

// NewSQLiteCostItemRepo creates a new SQLiteCostItemRepo.
func NewSQLiteCostItemRepo(conn db.DBTX) *SQLiteCostItemRepo {
	return &SQLiteCostItemRepo{db: conn}
}

func (r *SQLiteCostItemRepo) Create(ctx context.Context, c *domain.CostItem) error {
	query := `INSERT INTO cost_items (` + costItemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.TenantID,
		c.ProjectID,
		nullableStringToValue(c.PhaseID),
		c.Category,
		c.BudgetedCents,
		c.CommittedCents,
		c.ActualCents,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting cost item: %w", err)
	}
	return nil
}

func (r *SQLiteCostItemRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.CostItem, error) {
	query := `SELECT ` + costItemColumns + ` FROM cost_items WHERE tenant_id = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, tenantID, id)
	c, err := scanCostItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("cost item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning cost item: %w", err)
	}
	return c, nil
}

func (r *SQLiteCostItemRepo) ListByProject(ctx context.Context, tenantID, projectID string) ([]*domain.CostItem, error) {
	query := `SELECT ` + costItemColumns + ` FROM cost_items
		WHERE tenant_id = ? AND project_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing cost items: %w", err)
	}
	defer rows.Close()

	var items []*domain.CostItem
	for rows.Next() {
		c, err := scanCostItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cost item row: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cost items: %w", err)
	}
	return items, nil
}

func (r *SQLiteCostItemRepo) Update(ctx context.Context, c *domain.CostItem) error {
	query := `UPDATE cost_items SET phase_id = ?, category = ?, budgeted_cents = ?, committed_cents = ?, actual_cents = ?, updated_at = ?
		WHERE tenant_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStringToValue(c.PhaseID),
		c.Category,
		c.BudgetedCents,
		c.CommittedCents,
		c.ActualCents,
		c.UpdatedAt.Format(time.RFC3339),
		c.TenantID,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating cost item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("cost item: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteCostItemRepo) Delete(ctx context.Context, tenantID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cost_items WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting cost item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("cost item: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteCostItemRepo) DetachPhase(ctx context.Context, tenantID, phaseID string) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx,
		`UPDATE cost_items SET phase_id = NULL, updated_at = ? WHERE tenant_id = ? AND phase_id = ?`,
		now, tenantID, phaseID)
	if err != nil {
		return 0, fmt.Errorf("detaching cost items from phase: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("detaching cost items from phase: %w", err)
	}
	return n, nil
}

func scanCostItem(row rowScanner) (*domain.CostItem, error) {
	var c domain.CostItem
	var createdAtStr, updatedAtStr string
	var phaseID sql.NullString

	err := row.Scan(
		&c.ID, &c.TenantID, &c.ProjectID, &phaseID, &c.Category,
		&c.BudgetedCents, &c.CommittedCents, &c.ActualCents,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	if phaseID.Valid && phaseID.String != "" {
		v := phaseID.String
		c.PhaseID = &v
	}

	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &c, nil
}
