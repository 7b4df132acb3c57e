/*
SQLite-backed Store.

Each scenario is one row in the scenarios table. The document is kept as its
canonical JSON so older rows are upgraded by scenario.Normalize when they are
read; nothing derived from the document (income, costs, projections) is
stored.

The database is opened with WAL journaling. A sync.RWMutex serializes writes
inside the process.

Usage:

	st, err := store.NewSQLite("./data/scenarios.db")
	if err != nil {
		return err
	}
	defer st.Close()
*/
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/iwvelando/school-forecast/internal/scenario"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite implements Store on a SQLite database.
type SQLite struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLite opens (and migrates) the database at dbPath.
// Use ":memory:" for an in-memory database.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		schema_version INTEGER NOT NULL,
		document_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scenarios_name ON scenarios(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Create saves doc under a new id.
func (s *SQLite) Create(ctx context.Context, doc scenario.Document) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := scenario.EncodeJSON(doc)
	if err != nil {
		return Record{}, err
	}
	now := time.Now().UTC().Truncate(time.Second)
	rec := Record{ID: newID(), Name: displayName(doc), Document: doc.Clone(), CreatedAt: now, UpdatedAt: now}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scenarios (id, name, schema_version, document_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, doc.SchemaVersion, string(data),
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return Record{}, fmt.Errorf("failed to insert scenario: %w", err)
	}
	return rec, nil
}

// Get returns the scenario with id.
func (s *SQLite) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, document_json, created_at, updated_at FROM scenarios WHERE id = ?", id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load scenario %s: %w", id, err)
	}
	return rec, nil
}

// List returns every stored scenario.
func (s *SQLite) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, document_json, created_at, updated_at FROM scenarios ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read scenario row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Update replaces the document stored under id.
func (s *SQLite) Update(ctx context.Context, id string, doc scenario.Document) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := scenario.EncodeJSON(doc)
	if err != nil {
		return Record{}, err
	}
	now := time.Now().UTC().Truncate(time.Second)

	result, err := s.db.ExecContext(ctx,
		`UPDATE scenarios SET name = ?, schema_version = ?, document_json = ?, updated_at = ? WHERE id = ?`,
		displayName(doc), doc.SchemaVersion, string(data), now.Format(time.RFC3339), id,
	)
	if err != nil {
		return Record{}, fmt.Errorf("failed to update scenario %s: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return Record{}, ErrNotFound
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, document_json, created_at, updated_at FROM scenarios WHERE id = ?", id)
	return scanRecord(row)
}

// Delete removes the scenario with id.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM scenarios WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var data, createdAt, updatedAt string
	if err := row.Scan(&rec.ID, &rec.Name, &data, &createdAt, &updatedAt); err != nil {
		return Record{}, err
	}
	doc, err := scenario.Decode([]byte(data))
	if err != nil {
		return Record{}, err
	}
	rec.Document = doc
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return rec, nil
}
