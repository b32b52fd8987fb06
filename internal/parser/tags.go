package parser

import (
	"regexp"
	"strings"
)

// inlineTagRegex matches #tag tokens: a letter first, then
// alphanumerics, underscores, hyphens, or slashes, preceded by the
// start of a line or whitespace.
var inlineTagRegex = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)

// ExtractTags returns the tags of a document: the front-matter "tags"
// field (a single string or a list of strings) plus inline #tag tokens
// from the body. Tags are case-sensitive, stored verbatim, and
// deduplicated in first-seen order. Code blocks and inline code spans
// are stripped before inline tags are scanned.
func ExtractTags(frontMatter map[string]any, body string) []string {
	seen := make(map[string]struct{})
	var tags []string

	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return
		}
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	if raw, ok := frontMatter["tags"]; ok {
		switch v := raw.(type) {
		case string:
			add(v)
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					add(s)
				}
			}
		case []string:
			for _, s := range v {
				add(s)
			}
		}
	}

	stripped := stripCode(body)
	for _, m := range inlineTagRegex.FindAllStringSubmatch(stripped, -1) {
		add(m[1])
	}

	return tags
}

// stripCode removes fenced code blocks and inline code spans so that
// their content cannot contribute tags or wiki references.
func stripCode(body string) string {
	lines := strings.Split(body, "\n")
	var result strings.Builder
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}
		result.WriteString(stripInlineCode(line))
		result.WriteString("\n")
	}

	return result.String()
}

var inlineCodeRegex = regexp.MustCompile("`[^`]*`")

// stripInlineCode blanks out `code` spans within a single line.
func stripInlineCode(line string) string {
	return inlineCodeRegex.ReplaceAllString(line, " ")
}
