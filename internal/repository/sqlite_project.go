package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"costbook/internal/db"
	"costbook/internal/domain"
)

// projectColumns is the canonical SELECT column list for projects.
const projectColumns = `id, tenant_id, name, original_budget_cents, current_budget_cents,
		approved_budget_cents, status, requires_approval, approval_threshold_cents,
		approved_by, approved_at, budget_version, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
// It accepts a db.DBTX so callers can scope it to a transaction.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.TenantID,
		p.Name,
		p.OriginalBudgetCents,
		p.CurrentBudgetCents,
		nullableInt64ToValue(p.ApprovedBudgetCents),
		string(p.Status),
		boolToInt(p.RequiresApproval),
		nullableInt64ToValue(p.ApprovalThresholdCents),
		nullableStringToValue(p.ApprovedBy),
		nullableTimeToString(p.ApprovedAt),
		p.BudgetVersion,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE tenant_id = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, tenantID, id)
	p, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context, tenantID string) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE tenant_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) UpdateMeta(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, requires_approval = ?, approval_threshold_cents = ?, updated_at = ?
		WHERE tenant_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		boolToInt(p.RequiresApproval),
		nullableInt64ToValue(p.ApprovalThresholdCents),
		p.UpdatedAt.Format(time.RFC3339),
		p.TenantID,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteProjectRepo) UpdateBudget(ctx context.Context, tenantID, id string, budgetCents, expectedVersion int64) error {
	query := `UPDATE projects
		SET current_budget_cents = ?, budget_version = budget_version + 1, updated_at = ?
		WHERE tenant_id = ? AND id = ? AND budget_version = ?`
	res, err := r.db.ExecContext(ctx, query,
		budgetCents,
		time.Now().UTC().Format(time.RFC3339),
		tenantID,
		id,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("updating project budget: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating project budget: %w", err)
	}
	if n == 0 {
		return r.classifyBudgetConflict(ctx, tenantID, id)
	}
	return nil
}

func (r *SQLiteProjectRepo) Approve(ctx context.Context, tenantID, id, approvedBy string, at time.Time, approvedCents, expectedVersion int64) error {
	query := `UPDATE projects
		SET status = 'approved', approved_budget_cents = ?, approved_by = ?, approved_at = ?,
			budget_version = budget_version + 1, updated_at = ?
		WHERE tenant_id = ? AND id = ? AND status = 'draft' AND budget_version = ?`
	res, err := r.db.ExecContext(ctx, query,
		approvedCents,
		approvedBy,
		at.Format(time.RFC3339),
		at.Format(time.RFC3339),
		tenantID,
		id,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("approving project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("approving project: %w", err)
	}
	if n == 0 {
		var status string
		row := r.db.QueryRowContext(ctx, `SELECT status FROM projects WHERE tenant_id = ? AND id = ?`, tenantID, id)
		if scanErr := row.Scan(&status); scanErr != nil {
			if scanErr == sql.ErrNoRows {
				return fmt.Errorf("project: %w", ErrNotFound)
			}
			return fmt.Errorf("approving project: %w", scanErr)
		}
		if domain.ProjectStatus(status) != domain.ProjectDraft {
			return fmt.Errorf("project is %s, only draft projects can be approved: %w", status, domain.ErrInvalidTransition)
		}
		return fmt.Errorf("project budget moved during approval: %w", ErrConcurrentModification)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, tenantID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project: %w", ErrNotFound)
	}
	return nil
}

// classifyBudgetConflict distinguishes a missing project from a lost
// optimistic-concurrency race after a zero-row conditional update.
func (r *SQLiteProjectRepo) classifyBudgetConflict(ctx context.Context, tenantID, id string) error {
	var one int
	row := r.db.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("project: %w", ErrNotFound)
		}
		return fmt.Errorf("classifying budget conflict: %w", err)
	}
	return fmt.Errorf("project budget version moved: %w", ErrConcurrentModification)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var statusStr, createdAtStr, updatedAtStr string
	var approvedBudget, threshold sql.NullInt64
	var approvedBy, approvedAtStr sql.NullString
	var requiresApproval int

	err := row.Scan(
		&p.ID, &p.TenantID, &p.Name,
		&p.OriginalBudgetCents, &p.CurrentBudgetCents,
		&approvedBudget, &statusStr, &requiresApproval, &threshold,
		&approvedBy, &approvedAtStr, &p.BudgetVersion,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	p.Status = domain.ProjectStatus(statusStr)
	p.RequiresApproval = intToBool(requiresApproval)
	if approvedBudget.Valid {
		v := approvedBudget.Int64
		p.ApprovedBudgetCents = &v
	}
	if threshold.Valid {
		v := threshold.Int64
		p.ApprovalThresholdCents = &v
	}
	if approvedBy.Valid {
		v := approvedBy.String
		p.ApprovedBy = &v
	}
	p.ApprovedAt = parseNullableTime(approvedAtStr)

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
