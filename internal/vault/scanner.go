// Package vault builds the reference graph over a note vault and
// computes the inclusion set to copy.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions configures vault enumeration.
type ScanOptions struct {
	// ExcludeDirs lists directory names to skip in addition to hidden
	// directories (e.g. "templates", "node_modules").
	ExcludeDirs []string
}

// Scan enumerates all files under the vault root and returns their
// vault-relative slash paths in lexicographic order. Hidden directories
// (".git", ".obsidian", ...) and ExcludeDirs entries are skipped.
// Enumeration failure is fatal: the caller must abort before copying.
func Scan(root string, opts ScanOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access vault root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault root is not a directory: %s", root)
	}

	excludeMap := make(map[string]bool)
	for _, dir := range opts.ExcludeDirs {
		excludeMap[dir] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", path, err)
		}

		if path == root {
			return nil
		}

		if d.IsDir() {
			if excludeMap[d.Name()] || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		// Hidden files (e.g. .DS_Store) are not vault content.
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// IsMarkdown reports whether a vault-relative path names a Markdown
// document. Only Markdown files participate in tag filtering; all other
// types are filter-transparent.
func IsMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}
