// Package history persists executed queries in a local SQLite
// database, outside qtab's in-memory core (spec §9's supplemented
// "command history across sessions" feature; it is not a correctness
// dependency of any [MODULE] in the distilled spec).
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Record is one executed query, tied to the file it ran against.
type Record struct {
	ID        int64
	SourcePath string
	QueryText string
	RanAt     time.Time
	RowCount  int
	Err       string // empty on success
}

// Store manages the SQLite-backed query history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record saves one executed query. A non-nil queryErr is stored so a
// failed query still shows up in the History mode for re-editing.
func (s *Store) Record(sourcePath, queryText string, rowCount int, queryErr error) error {
	errText := ""
	if queryErr != nil {
		errText = queryErr.Error()
	}
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO query_history (source_path, query_text, row_count, err_text)
		VALUES (?, ?, ?, ?)
	`, sourcePath, queryText, rowCount, errText)
	if err != nil {
		return fmt.Errorf("recording query history: %w", err)
	}
	return nil
}

// Recent returns the limit most recent records across all source
// files, most recent first.
func (s *Store) Recent(limit int) ([]Record, error) {
	ctx := context.Background()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_path, query_text, ran_at, row_count, err_text
		FROM query_history
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var r Record
		var ranAt string
		if err := rows.Scan(&r.ID, &r.SourcePath, &r.QueryText, &ranAt, &r.RowCount, &r.Err); err != nil {
			return nil, fmt.Errorf("scanning history record: %w", err)
		}
		r.RanAt, err = parseTime(ranAt)
		if err != nil {
			return nil, fmt.Errorf("parsing ran_at: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", s)
}

var errMigrationFailed = errors.New("history: migration failed")

func (s *Store) migrate() error {
	current := s.getSchemaVersion()
	migrations := []func(*sql.Tx) error{migrateV1}

	ctx := context.Background()
	for i := current; i < len(migrations); i++ {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", i+1, err)
		}
		if err := migrations[i](tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w (migration %d): %v", errMigrationFailed, i+1, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("updating schema version: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("inserting schema version: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Store) getSchemaVersion() int {
	ctx := context.Background()
	var tableName string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&tableName)
	if err != nil {
		return 0
	}
	var version int
	if err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version); err != nil {
		return 0
	}
	return version
}

func migrateV1(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS query_history (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			source_path   TEXT NOT NULL,
			query_text    TEXT NOT NULL,
			ran_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			row_count     INTEGER NOT NULL,
			err_text      TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_query_history_source
			ON query_history(source_path, id DESC)`,
	}
	ctx := context.Background()
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}
	return nil
}
