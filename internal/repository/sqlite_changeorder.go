package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"costbook/internal/db"
	"costbook/internal/domain"
)

const changeOrderColumns = `id, tenant_id, project_id, reason, description, amount_change_cents,
		status, original_budget_cents, new_budget_cents, rejection_reason,
		decided_by, decided_at, created_at, updated_at`

// SQLiteChangeOrderRepo implements ChangeOrderRepo using a SQLite database.
type SQLiteChangeOrderRepo struct {
	db db.DBTX
}

// NewSQLiteChangeOrderRepo creates a new SQLiteChangeOrderRepo.
func NewSQLiteChangeOrderRepo(conn db.DBTX) *SQLiteChangeOrderRepo {
	return &SQLiteChangeOrderRepo{db: conn}
}

func (r *SQLiteChangeOrderRepo) Create(ctx context.Context, c *domain.ChangeOrder) error {
	query := `INSERT INTO change_orders (` + changeOrderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.TenantID,
		c.ProjectID,
		c.Reason,
		c.Description,
		c.AmountChangeCents,
		string(c.Status),
		c.OriginalBudgetCents,
		c.NewBudgetCents,
		c.RejectionReason,
		nullableStringToValue(c.DecidedBy),
		nullableTimeToString(c.DecidedAt),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting change order: %w", err)
	}
	return nil
}

func (r *SQLiteChangeOrderRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.ChangeOrder, error) {
	query := `SELECT ` + changeOrderColumns + ` FROM change_orders WHERE tenant_id = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, tenantID, id)
	c, err := scanChangeOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("change order: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning change order: %w", err)
	}
	return c, nil
}

func (r *SQLiteChangeOrderRepo) ListByProject(ctx context.Context, tenantID, projectID string) ([]*domain.ChangeOrder, error) {
	query := `SELECT ` + changeOrderColumns + ` FROM change_orders
		WHERE tenant_id = ? AND project_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing change orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.ChangeOrder
	for rows.Next() {
		c, err := scanChangeOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning change order row: %w", err)
		}
		orders = append(orders, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating change orders: %w", err)
	}
	return orders, nil
}

func (r *SQLiteChangeOrderRepo) MarkApproved(ctx context.Context, tenantID, id, decidedBy string, at time.Time) error {
	query := `UPDATE change_orders
		SET status = 'approved', decided_by = ?, decided_at = ?, updated_at = ?
		WHERE tenant_id = ? AND id = ? AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query,
		decidedBy,
		at.Format(time.RFC3339),
		at.Format(time.RFC3339),
		tenantID,
		id,
	)
	if err != nil {
		return fmt.Errorf("approving change order: %w", err)
	}
	return r.classifyDecision(ctx, res, tenantID, id, "approving change order")
}

func (r *SQLiteChangeOrderRepo) MarkRejected(ctx context.Context, tenantID, id, decidedBy, reason string, at time.Time) error {
	query := `UPDATE change_orders
		SET status = 'rejected', rejection_reason = ?, decided_by = ?, decided_at = ?, updated_at = ?
		WHERE tenant_id = ? AND id = ? AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query,
		reason,
		decidedBy,
		at.Format(time.RFC3339),
		at.Format(time.RFC3339),
		tenantID,
		id,
	)
	if err != nil {
		return fmt.Errorf("rejecting change order: %w", err)
	}
	return r.classifyDecision(ctx, res, tenantID, id, "rejecting change order")
}

// classifyDecision inspects a zero-row conditional decision write and
// reports whether the order is missing or already decided.
func (r *SQLiteChangeOrderRepo) classifyDecision(ctx context.Context, res sql.Result, tenantID, id, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		return nil
	}
	var status string
	row := r.db.QueryRowContext(ctx, `SELECT status FROM change_orders WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if scanErr := row.Scan(&status); scanErr != nil {
		if scanErr == sql.ErrNoRows {
			return fmt.Errorf("change order: %w", ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, scanErr)
	}
	return fmt.Errorf("change order is %s, only pending orders can be decided: %w", status, domain.ErrInvalidTransition)
}

func scanChangeOrder(row rowScanner) (*domain.ChangeOrder, error) {
	var c domain.ChangeOrder
	var statusStr, createdAtStr, updatedAtStr string
	var decidedBy, decidedAtStr sql.NullString

	err := row.Scan(
		&c.ID, &c.TenantID, &c.ProjectID, &c.Reason, &c.Description,
		&c.AmountChangeCents, &statusStr,
		&c.OriginalBudgetCents, &c.NewBudgetCents, &c.RejectionReason,
		&decidedBy, &decidedAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	c.Status = domain.ChangeOrderStatus(statusStr)
	if decidedBy.Valid {
		v := decidedBy.String
		c.DecidedBy = &v
	}
	c.DecidedAt = parseNullableTime(decidedAtStr)

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
