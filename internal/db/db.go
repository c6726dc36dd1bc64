package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenDB opens the costbook SQLite database at the given path, creating
// parent directories as needed. If path is ":memory:", uses an in-memory
// database. Pragmas ride on the DSN so every connection database/sql pools
// gets them, not only the one that happened to run an Exec:
//   - busy_timeout queues writers behind the lock instead of failing with
//     SQLITE_BUSY
//   - foreign_keys enforces the project -> phase/cost/order ownership chain
//   - WAL (file-backed only) keeps readers unblocked while approval writes
//     are in flight
//
// Runs migrations before returning.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
