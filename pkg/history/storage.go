// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause

// Package history persists a record of processed lint checks. Recording is
// optional and purely internal: it never affects a response, and failures
// are logged and ignored.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

// CheckRecord is one processed lint check.
type CheckRecord struct {
	ID         int64
	Filename   string
	Mode       string
	Findings   int
	DurationMs int64
	CreatedAt  time.Time
}

// Storage persists check records in a SQLite database.
type Storage struct {
	db *sql.DB
}

// NewStorage opens (creating if needed) the history database at dbPath.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Infof("Check history storage initialized: %s", dbPath)
	return storage, nil
}

// initSchema creates the checks table if it doesn't exist
func (s *Storage) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS checks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL,
		mode TEXT NOT NULL,
		findings INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_checks_filename ON checks(filename);
	CREATE INDEX IF NOT EXISTS idx_checks_created_at ON checks(created_at);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Record saves one check record.
func (s *Storage) Record(r *CheckRecord) error {
	query := `
	INSERT INTO checks (filename, mode, findings, duration_ms)
	VALUES (?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, r.Filename, r.Mode, r.Findings, r.DurationMs)
	if err != nil {
		return fmt.Errorf("failed to record check: %w", err)
	}

	log.Debugf("Check recorded: filename=%s mode=%s findings=%d", r.Filename, r.Mode, r.Findings)
	return nil
}

// RecentChecks returns up to limit records, newest first.
func (s *Storage) RecentChecks(limit int) ([]CheckRecord, error) {
	query := `
	SELECT id, filename, mode, findings, duration_ms, created_at
	FROM checks
	ORDER BY id DESC
	LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks: %w", err)
	}
	defer rows.Close()

	var records []CheckRecord
	for rows.Next() {
		var r CheckRecord
		err := rows.Scan(&r.ID, &r.Filename, &r.Mode, &r.Findings, &r.DurationMs, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating checks: %w", err)
	}

	return records, nil
}

// Count returns the total number of recorded checks.
func (s *Storage) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM checks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count checks: %w", err)
	}

	return count, nil
}

// ClearAll removes all recorded checks (useful for testing)
func (s *Storage) ClearAll() error {
	_, err := s.db.Exec(`DELETE FROM checks`)
	if err != nil {
		return fmt.Errorf("failed to clear checks: %w", err)
	}

	log.Info("Check history cleared")
	return nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
