// Package resolver maps reference targets, as written in Markdown, to
// concrete files under the vault root.
package resolver

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Resolver resolves raw link targets against one vault root. It only
// reads filesystem metadata; it never mutates anything.
type Resolver struct {
	root string
}

// New creates a Resolver for the vault rooted at root. The root is
// canonicalized through symlinks once so all resolved paths compare
// against a stable base.
func New(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault root %s: %w", root, err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize vault root %s: %w", root, err)
	}
	return &Resolver{root: canonical}, nil
}

// Root returns the canonical absolute vault root.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve maps a raw target to the canonical vault-relative slash path
// of an existing file. sourceRel is the vault-relative slash path of
// the referencing document. Rules are tried in order, first hit wins:
//
//  1. target relative to the source file's directory, literal
//  2. target with ".md" appended (when it has no extension), relative
//     to the vault root
//  3. target literal, relative to the vault root
//
// Targets are Unicode-normalized before comparison so visually
// identical spellings from different systems reach the same file.
// Returns false when no rule matches.
func (r *Resolver) Resolve(rawTarget, sourceRel string) (string, bool) {
	rawTarget = strings.TrimSpace(rawTarget)
	if rawTarget == "" {
		return "", false
	}

	sourceDir := path.Dir(sourceRel)
	candidates := []string{
		path.Join(sourceDir, rawTarget),
	}
	if path.Ext(rawTarget) == "" {
		candidates = append(candidates, rawTarget+".md")
	}
	candidates = append(candidates, rawTarget)

	for _, candidate := range candidates {
		if resolved, ok := r.lookup(candidate); ok {
			return resolved, true
		}
	}
	return "", false
}

// lookup probes one vault-relative candidate in NFC and NFD forms and
// returns its canonical vault-relative slash path when a regular file
// exists there.
func (r *Resolver) lookup(candidate string) (string, bool) {
	for _, form := range []string{norm.NFC.String(candidate), norm.NFD.String(candidate)} {
		full := filepath.Join(r.root, filepath.FromSlash(form))

		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}

		// Collapse symlinked spellings to one canonical identity.
		// Symlink cycles fail EvalSymlinks and are treated as no match.
		canonical, err := filepath.EvalSymlinks(full)
		if err != nil {
			continue
		}

		rel, err := filepath.Rel(r.root, canonical)
		if err != nil || strings.HasPrefix(rel, "..") {
			// Escapes the vault (e.g. symlink pointing outside).
			continue
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}
