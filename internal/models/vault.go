// Package models defines the vault data model shared across vaultcopy:
// files, references, the reference graph, and tag filters.
package models

import (
	"sort"
)

// RefKind distinguishes a plain link from an embed (transclusion).
// Both kinds are followed identically during selection; the kind is
// informational only.
type RefKind int

const (
	// RefLink is a navigational link such as [text](target) or [[target]].
	RefLink RefKind = iota
	// RefEmbed is an embedded resource such as ![alt](target) or ![[target]].
	RefEmbed
)

// String returns the string representation of the RefKind.
func (k RefKind) String() string {
	switch k {
	case RefEmbed:
		return "embed"
	default:
		return "link"
	}
}

// RawReference is a reference target exactly as written in a Markdown
// body, before path resolution. The target has its anchor and alias
// already stripped.
type RawReference struct {
	Target string
	Kind   RefKind
}

// Reference is a resolved directed edge from a source Markdown file to
// a target file. Both ends are canonical vault-relative slash paths.
type Reference struct {
	Source string
	Target string
	Kind   RefKind
}

// VaultFile is a single file discovered under the vault root.
// Identity is the canonical vault-relative slash path. Tags and Seed
// are only populated for Markdown files.
type VaultFile struct {
	Path       string
	IsMarkdown bool
	Tags       []string
	Seed       bool
}

// VaultGraph holds the node table and adjacency for one run.
// Nodes are unique per canonical path; parallel edges between the same
// pair collapse into one.
type VaultGraph struct {
	files map[string]*VaultFile
	edges map[string]map[string]RefKind
}

// NewVaultGraph creates an empty graph.
func NewVaultGraph() *VaultGraph {
	return &VaultGraph{
		files: make(map[string]*VaultFile),
		edges: make(map[string]map[string]RefKind),
	}
}

// AddFile registers a file node. Adding the same path twice keeps the
// first entry so duplicate discovery cannot fork identities.
func (g *VaultGraph) AddFile(f *VaultFile) {
	if _, exists := g.files[f.Path]; exists {
		return
	}
	g.files[f.Path] = f
}

// File returns the node for path, or nil if the path was never discovered.
func (g *VaultGraph) File(path string) *VaultFile {
	return g.files[path]
}

// HasFile reports whether path is a node in the graph.
func (g *VaultGraph) HasFile(path string) bool {
	_, ok := g.files[path]
	return ok
}

// AddEdge records a resolved reference. Both endpoints must already be
// nodes; the edge is dropped otherwise. A duplicate source/target pair
// collapses, keeping the first kind seen.
func (g *VaultGraph) AddEdge(ref Reference) bool {
	if !g.HasFile(ref.Source) || !g.HasFile(ref.Target) {
		return false
	}
	targets, ok := g.edges[ref.Source]
	if !ok {
		targets = make(map[string]RefKind)
		g.edges[ref.Source] = targets
	}
	if _, dup := targets[ref.Target]; dup {
		return true
	}
	targets[ref.Target] = ref.Kind
	return true
}

// Paths returns all node paths in lexicographic order.
func (g *VaultGraph) Paths() []string {
	paths := make([]string, 0, len(g.files))
	for p := range g.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Seeds returns the paths of all seed nodes in lexicographic order.
func (g *VaultGraph) Seeds() []string {
	var seeds []string
	for p, f := range g.files {
		if f.Seed {
			seeds = append(seeds, p)
		}
	}
	sort.Strings(seeds)
	return seeds
}

// Targets returns the outgoing edge targets of source in lexicographic
// order. A node with no outgoing edges yields nil.
func (g *VaultGraph) Targets(source string) []string {
	adjacency, ok := g.edges[source]
	if !ok {
		return nil
	}
	targets := make([]string, 0, len(adjacency))
	for t := range adjacency {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// EdgeKind returns the kind of the edge source->target and whether the
// edge exists.
func (g *VaultGraph) EdgeKind(source, target string) (RefKind, bool) {
	kind, ok := g.edges[source][target]
	return kind, ok
}

// Len returns the number of nodes.
func (g *VaultGraph) Len() int {
	return len(g.files)
}

// UnresolvedReference records a reference whose target could not be
// resolved to a discovered vault file. The edge is omitted from the
// graph; the referencing file itself is unaffected.
type UnresolvedReference struct {
	Source string
	Target string
}

// FrontMatterWarning records a Markdown file whose front matter failed
// to decode. The file is processed as if it had no front matter.
type FrontMatterWarning struct {
	Path string
	Err  error
}

// BuildReport accumulates the non-fatal issues encountered while
// building a VaultGraph. It is returned alongside the graph so callers
// can report without failing the run.
type BuildReport struct {
	Unresolved  []UnresolvedReference
	FrontMatter []FrontMatterWarning
}

// HasWarnings reports whether any non-fatal issue was recorded.
func (r *BuildReport) HasWarnings() bool {
	return len(r.Unresolved) > 0 || len(r.FrontMatter) > 0
}
