package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"costbook/internal/db"
	"costbook/internal/domain"
)

const phaseColumns = `id, tenant_id, project_id, name, order_index, budget_cents,
		depends_on_phase_id, created_at, updated_at`

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.Phase) error {
	query := `INSERT INTO phases (` + phaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.TenantID,
		p.ProjectID,
		p.Name,
		p.OrderIndex,
		nullableInt64ToValue(p.BudgetCents),
		nullableStringToValue(p.DependsOnPhaseID),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE tenant_id = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, tenantID, id)
	p, err := scanPhase(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phase: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning phase: %w", err)
	}
	return p, nil
}

func (r *SQLitePhaseRepo) ListByProject(ctx context.Context, tenantID, projectID string) ([]*domain.Phase, error) {
	// Sibling order: order_index, ties broken by creation time.
	query := `SELECT ` + phaseColumns + ` FROM phases
		WHERE tenant_id = ? AND project_id = ? ORDER BY order_index, created_at`
	rows, err := r.db.QueryContext(ctx, query, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []*domain.Phase
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning phase row: %w", err)
		}
		phases = append(phases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, p *domain.Phase) error {
	query := `UPDATE phases SET name = ?, order_index = ?, budget_cents = ?, depends_on_phase_id = ?, updated_at = ?
		WHERE tenant_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.OrderIndex,
		nullableInt64ToValue(p.BudgetCents),
		nullableStringToValue(p.DependsOnPhaseID),
		p.UpdatedAt.Format(time.RFC3339),
		p.TenantID,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("phase: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, tenantID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("phase: %w", ErrNotFound)
	}
	return nil
}

func scanPhase(row rowScanner) (*domain.Phase, error) {
	var p domain.Phase
	var createdAtStr, updatedAtStr string
	var budget sql.NullInt64
	var dependsOn sql.NullString

	err := row.Scan(
		&p.ID, &p.TenantID, &p.ProjectID, &p.Name, &p.OrderIndex,
		&budget, &dependsOn, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	if budget.Valid {
		v := budget.Int64
		p.BudgetCents = &v
	}
	if dependsOn.Valid && dependsOn.String != "" {
		v := dependsOn.String
		p.DependsOnPhaseID = &v
	}

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &p, nil
}
