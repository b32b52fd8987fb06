package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/vaultcopy/internal/models"
)

// RunInfo describes one recorded run.
type RunInfo struct {
	ID            string
	StartedAt     time.Time
	Root          string
	IncludeTags   []string
	ExcludeTags   []string
	FileCount     int
	IncludedCount int
}

// RecordRun replaces the file and link snapshot with the given graph
// and inclusion set, and appends a run row. Returns the generated run
// ID.
func (db *DB) RecordRun(graph *models.VaultGraph, included []string, filter models.TagFilter, root string) (string, error) {
	runID := uuid.NewString()

	includedSet := make(map[string]bool, len(included))
	for _, p := range included {
		includedSet[p] = true
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	// Snapshot semantics: wipe the previous run's rows.
	if _, err := tx.Exec(`DELETE FROM files`); err != nil {
		return "", fmt.Errorf("index: clear files: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM links`); err != nil {
		return "", fmt.Errorf("index: clear links: %w", err)
	}

	fileStmt, err := tx.Prepare(`INSERT INTO files (path, is_markdown, seed, included, tags) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("index: prepare file insert: %w", err)
	}
	defer fileStmt.Close()

	for _, path := range graph.Paths() {
		file := graph.File(path)
		tagsJSON, _ := json.Marshal(file.Tags)
		if _, err := fileStmt.Exec(path, file.IsMarkdown, file.Seed, includedSet[path], string(tagsJSON)); err != nil {
			return "", fmt.Errorf("index: insert file %s: %w", path, err)
		}
	}

	linkStmt, err := tx.Prepare(`INSERT OR IGNORE INTO links (source, target, kind) VALUES (?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("index: prepare link insert: %w", err)
	}
	defer linkStmt.Close()

	for _, source := range graph.Paths() {
		for _, target := range graph.Targets(source) {
			kind, _ := graph.EdgeKind(source, target)
			if _, err := linkStmt.Exec(source, target, kind.String()); err != nil {
				return "", fmt.Errorf("index: insert link %s -> %s: %w", source, target, err)
			}
		}
	}

	includeJSON, _ := json.Marshal(sortedTags(filter.Include))
	excludeJSON, _ := json.Marshal(sortedTags(filter.Exclude))
	_, err = tx.Exec(
		`INSERT INTO runs (id, started_at, root, include_tags, exclude_tags, file_count, included_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC(), root, string(includeJSON), string(excludeJSON), graph.Len(), len(included),
	)
	if err != nil {
		return "", fmt.Errorf("index: insert run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("index: commit: %w", err)
	}
	return runID, nil
}

// Backlinks returns the sources that reference target, sorted.
func (db *DB) Backlinks(target string) ([]string, error) {
	rows, err := db.conn.Query(`SELECT source FROM links WHERE target = ? ORDER BY source`, target)
	if err != nil {
		return nil, fmt.Errorf("index: query backlinks: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("index: scan backlink: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// IncludedPaths returns all paths marked included in the snapshot,
// sorted.
func (db *DB) IncludedPaths() ([]string, error) {
	rows, err := db.conn.Query(`SELECT path FROM files WHERE included = 1 ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("index: query included: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("index: scan path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// LastRun returns the most recent run row, or nil when no run has been
// recorded.
func (db *DB) LastRun() (*RunInfo, error) {
	row := db.conn.QueryRow(
		`SELECT id, started_at, root, include_tags, exclude_tags, file_count, included_count
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`)

	var info RunInfo
	var includeJSON, excludeJSON string
	err := row.Scan(&info.ID, &info.StartedAt, &info.Root, &includeJSON, &excludeJSON, &info.FileCount, &info.IncludedCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("index: scan run: %w", err)
	}

	_ = json.Unmarshal([]byte(includeJSON), &info.IncludeTags)
	_ = json.Unmarshal([]byte(excludeJSON), &info.ExcludeTags)
	return &info, nil
}

func sortedTags(set map[string]struct{}) []string {
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
