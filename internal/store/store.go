// Package store persists decoded documents to a SQL backend, picked by the
// DSN's scheme.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"remotecompose/internal/compose"
)

// Store persists decoded documents keyed by an opaque document ID.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the backend named by dsn's scheme: "sqlite://",
// "postgres://" (or "postgresql://"), or "mysql://". The sqlite and mysql
// prefixes are stripped before the DSN is handed to the driver; postgres
// URLs are passed through unchanged. A bare path with no scheme is treated
// as a sqlite file.
func Open(dsn string) (*Store, error) {
	driver, conn := splitDSN(dsn)

	db, err := sql.Open(driver, conn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", driver, err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func splitDSN(dsn string) (driver, conn string) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", strings.TrimPrefix(dsn, "sqlite://")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn
	case strings.HasPrefix(dsn, "mysql://"):
		return "mysql", strings.TrimPrefix(dsn, "mysql://")
	default:
		return "sqlite", dsn
	}
}

func (s *Store) migrate() error {
	ddl := `CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		major INTEGER NOT NULL,
		minor INTEGER NOT NULL,
		patch INTEGER NOT NULL,
		root_json TEXT NOT NULL,
		decoded_at TIMESTAMP NOT NULL
	)`
	_, err := s.db.Exec(ddl)
	return err
}

// Save serializes doc's root tree as JSON and stores it under id, replacing
// any prior document with the same id.
func (s *Store) Save(id string, doc *compose.Document) error {
	rootJSON, err := json.Marshal(doc.Root)
	if err != nil {
		return fmt.Errorf("store: marshal root: %w", err)
	}

	query := `INSERT INTO documents (id, major, minor, patch, root_json, decoded_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if s.driver == "postgres" {
		query = `INSERT INTO documents (id, major, minor, patch, root_json, decoded_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET major=$2, minor=$3, patch=$4, root_json=$5, decoded_at=$6`
	} else {
		query = `REPLACE INTO documents (id, major, minor, patch, root_json, decoded_at) VALUES (?, ?, ?, ?, ?, ?)`
	}

	_, err = s.db.Exec(query, id, doc.Header.Major, doc.Header.Minor, doc.Header.Patch, string(rootJSON), time.Now())
	if err != nil {
		return fmt.Errorf("store: save %s: %w", id, err)
	}
	return nil
}

// Summary is the lightweight row returned by List, without the full tree.
type Summary struct {
	ID                  string
	Major, Minor, Patch uint32
	DecodedAt           time.Time
}

// List returns a summary of every stored document, most recently decoded
// first.
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query(`SELECT id, major, minor, patch, decoded_at FROM documents ORDER BY decoded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Major, &sm.Minor, &sm.Patch, &sm.DecodedAt); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
