package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id                       TEXT PRIMARY KEY,
		tenant_id                TEXT NOT NULL,
		name                     TEXT NOT NULL,
		original_budget_cents    INTEGER NOT NULL,
		current_budget_cents     INTEGER NOT NULL,
		approved_budget_cents    INTEGER,
		status                   TEXT NOT NULL DEFAULT 'draft'
		                         CHECK(status IN ('draft','approved')),
		requires_approval        INTEGER NOT NULL DEFAULT 0,
		approval_threshold_cents INTEGER,
		approved_by              TEXT,
		approved_at              TEXT,
		budget_version           INTEGER NOT NULL DEFAULT 1,
		created_at               TEXT NOT NULL,
		updated_at               TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_tenant ON projects(tenant_id)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id                  TEXT PRIMARY KEY,
		tenant_id           TEXT NOT NULL,
		project_id          TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name                TEXT NOT NULL,
		order_index         INTEGER NOT NULL DEFAULT 0,
		budget_cents        INTEGER,
		depends_on_phase_id TEXT REFERENCES phases(id) ON DELETE SET NULL,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_project ON phases(project_id)`,

	`CREATE TABLE IF NOT EXISTS cost_items (
		id              TEXT PRIMARY KEY,
		tenant_id       TEXT NOT NULL,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		phase_id        TEXT REFERENCES phases(id) ON DELETE SET NULL,
		category        TEXT NOT NULL,
		budgeted_cents  INTEGER NOT NULL DEFAULT 0,
		committed_cents INTEGER NOT NULL DEFAULT 0,
		actual_cents    INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cost_items_project ON cost_items(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cost_items_phase ON cost_items(phase_id)`,

	`CREATE TABLE IF NOT EXISTS change_orders (
		id                    TEXT PRIMARY KEY,
		tenant_id             TEXT NOT NULL,
		project_id            TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		reason                TEXT NOT NULL,
		description           TEXT NOT NULL DEFAULT '',
		amount_change_cents   INTEGER NOT NULL,
		status                TEXT NOT NULL DEFAULT 'pending'
		                      CHECK(status IN ('pending','approved','rejected')),
		original_budget_cents INTEGER NOT NULL,
		new_budget_cents      INTEGER NOT NULL,
		rejection_reason      TEXT NOT NULL DEFAULT '',
		decided_by            TEXT,
		decided_at            TEXT,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_change_orders_project ON change_orders(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_change_orders_status ON change_orders(status)`,
}
