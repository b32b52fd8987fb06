package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/harrison/vaultcopy/internal/models"
	"github.com/harrison/vaultcopy/internal/parser"
	"github.com/harrison/vaultcopy/internal/resolver"
)

// FrontMatterDecoder is the injected front-matter capability: raw
// document bytes in, decoded mapping plus remaining body out. A non-nil
// error means the block was malformed; implementations still return the
// body and an empty mapping so the caller can degrade to a warning.
type FrontMatterDecoder interface {
	Decode(content []byte) (frontMatter map[string]any, body string, err error)
}

// Builder constructs the VaultGraph for one run.
type Builder struct {
	root     string
	filter   models.TagFilter
	decoder  FrontMatterDecoder
	links    *parser.LinkExtractor
	resolver *resolver.Resolver
}

// NewBuilder creates a Builder over the vault rooted at root using the
// given tag filter and front-matter decoder. Passing a nil decoder
// selects the YAML decoder.
func NewBuilder(root string, filter models.TagFilter, decoder FrontMatterDecoder) (*Builder, error) {
	if decoder == nil {
		decoder = parser.YAMLFrontMatter{}
	}
	res, err := resolver.New(root)
	if err != nil {
		return nil, err
	}
	return &Builder{
		root:     root,
		filter:   filter,
		decoder:  decoder,
		links:    parser.NewLinkExtractor(),
		resolver: res,
	}, nil
}

// Build creates the graph over the discovered files: one node per file,
// one edge per resolved reference out of a Markdown document. Files are
// processed in lexicographic order so construction is reproducible.
// Read failures are fatal; malformed front matter and unresolvable
// references are accumulated on the report.
func (b *Builder) Build(files []string) (*models.VaultGraph, *models.BuildReport, error) {
	ordered := make([]string, len(files))
	copy(ordered, files)
	sort.Strings(ordered)

	graph := models.NewVaultGraph()
	report := &models.BuildReport{}

	// First pass: node table. Every discovered file is a node, so edge
	// targets can be validated against discovery rather than raw stat.
	for _, rel := range ordered {
		graph.AddFile(&models.VaultFile{
			Path:       rel,
			IsMarkdown: IsMarkdown(rel),
		})
	}

	// Second pass: tags, seed status, and edges for Markdown nodes.
	for _, rel := range ordered {
		file := graph.File(rel)
		if !file.IsMarkdown {
			continue
		}

		content, err := os.ReadFile(filepath.Join(b.root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", rel, err)
		}

		frontMatter, body, err := b.decoder.Decode(content)
		if err != nil {
			report.FrontMatter = append(report.FrontMatter, models.FrontMatterWarning{Path: rel, Err: err})
		}

		file.Tags = parser.ExtractTags(frontMatter, body)
		file.Seed = b.filter.Passes(file.Tags)

		for _, raw := range b.links.Extract(body) {
			target, ok := b.resolver.Resolve(raw.Target, rel)
			if ok && target != rel && graph.HasFile(target) {
				graph.AddEdge(models.Reference{Source: rel, Target: target, Kind: raw.Kind})
				continue
			}
			if ok && target == rel {
				// Self references add nothing to the closure.
				continue
			}
			report.Unresolved = append(report.Unresolved, models.UnresolvedReference{
				Source: rel,
				Target: raw.Target,
			})
		}
	}

	return graph, report, nil
}
