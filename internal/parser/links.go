package parser

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/harrison/vaultcopy/internal/models"
)

// wikiRefRegex matches [[target]] links and ![[target]] embeds. The
// capture keeps the raw inner text; alias and section parts are split
// off afterwards.
var wikiRefRegex = regexp.MustCompile(`(!)?\[\[([^\[\]]+)\]\]`)

// LinkExtractor parses Markdown bodies into outgoing reference targets.
// Standard links, images, and reference-style links come out of the
// goldmark AST; Obsidian wiki links and embeds are matched by regex
// over the body with code stripped. Extraction is idempotent: the same
// body always yields the same sequence.
type LinkExtractor struct {
	markdown goldmark.Markdown
}

// NewLinkExtractor creates a LinkExtractor backed by a default goldmark
// parser.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{
		markdown: goldmark.New(),
	}
}

// Extract returns the references of body in document order: AST links
// and images first, wiki references second. Duplicate target/kind
// pairs collapse. References inside fenced or inline code are ignored;
// goldmark never produces link nodes for code content, and wiki
// matching runs on a code-stripped copy.
func (e *LinkExtractor) Extract(body string) []models.RawReference {
	var refs []models.RawReference
	seen := make(map[models.RawReference]struct{})

	add := func(target string, kind models.RefKind) {
		target, ok := cleanTarget(target)
		if !ok {
			return
		}
		ref := models.RawReference{Target: target, Kind: kind}
		if _, dup := seen[ref]; dup {
			return
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}

	source := []byte(body)
	doc := e.markdown.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			add(string(v.Destination), models.RefLink)
		case *ast.Image:
			add(string(v.Destination), models.RefEmbed)
		}
		return ast.WalkContinue, nil
	})

	for _, m := range wikiRefRegex.FindAllStringSubmatch(stripCode(body), -1) {
		kind := models.RefLink
		if m[1] == "!" {
			kind = models.RefEmbed
		}
		add(splitWikiTarget(m[2]), kind)
	}

	return refs
}

// splitWikiTarget reduces the inner text of a wiki reference to its
// file part: [[file#section|label]] -> file. A reference to a section
// of the current document ([[#heading]]) reduces to the empty string
// and is dropped by cleanTarget.
func splitWikiTarget(inner string) string {
	if i := strings.Index(inner, "|"); i >= 0 {
		inner = inner[:i]
	}
	if i := strings.Index(inner, "#"); i >= 0 {
		inner = inner[:i]
	}
	return inner
}

// cleanTarget normalizes a raw target for resolution: trims space,
// drops external and empty targets, strips the fragment, and reverses
// percent-encoding.
func cleanTarget(target string) (string, bool) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", false
	}
	if strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:") {
		return "", false
	}
	if i := strings.Index(target, "#"); i >= 0 {
		target = target[:i]
	}
	if unescaped, err := url.PathUnescape(target); err == nil {
		target = unescaped
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return "", false
	}
	return target, true
}
