// Package index persists one run's vault graph to SQLite so the
// selection can be inspected after the fact (backlinks, seed and
// inclusion status). The snapshot is replaced wholesale on every run;
// there is no incremental sync.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	started_at     DATETIME NOT NULL,
	root           TEXT NOT NULL,
	include_tags   TEXT NOT NULL DEFAULT '[]',
	exclude_tags   TEXT NOT NULL DEFAULT '[]',
	file_count     INTEGER NOT NULL DEFAULT 0,
	included_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS files (
	path        TEXT PRIMARY KEY,
	is_markdown INTEGER NOT NULL DEFAULT 0,
	seed        INTEGER NOT NULL DEFAULT 0,
	included    INTEGER NOT NULL DEFAULT 0,
	tags        TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS links (
	source TEXT NOT NULL,
	target TEXT NOT NULL,
	kind   TEXT NOT NULL DEFAULT 'link',
	UNIQUE(source, target)
);

CREATE INDEX IF NOT EXISTS idx_links_source ON links(source);
CREATE INDEX IF NOT EXISTS idx_links_target ON links(target);
`

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at dsn and applies the
// schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
