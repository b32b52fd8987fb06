// Package parser extracts front matter, tags, and references from
// Markdown documents. It performs no filesystem access; callers hand in
// raw document bytes and consume decoded values.
package parser

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SplitFrontMatter separates a leading YAML front-matter block
// (delimited by --- lines) from the Markdown body. When no block is
// present the whole content is body and the returned front matter is nil.
func SplitFrontMatter(content []byte) (frontMatter []byte, body []byte) {
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) < 3 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return nil, content
	}

	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontMatter = bytes.Join(lines[1:i], []byte("\n"))
			body = bytes.Join(lines[i+1:], []byte("\n"))
			return frontMatter, body
		}
	}

	// No closing delimiter: treat everything as body.
	return nil, content
}

// YAMLFrontMatter decodes front-matter blocks with gopkg.in/yaml.v3.
// It satisfies the vault builder's decoder contract.
type YAMLFrontMatter struct{}

// Decode splits content and unmarshals the front-matter block into a
// key/value mapping. Malformed YAML returns the body together with an
// empty mapping and a non-nil error; callers treat that error as a
// warning, not a failure.
func (YAMLFrontMatter) Decode(content []byte) (map[string]any, string, error) {
	block, body := SplitFrontMatter(content)
	if block == nil {
		return map[string]any{}, string(body), nil
	}

	fm := map[string]any{}
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return map[string]any{}, string(body), fmt.Errorf("failed to decode front matter: %w", err)
	}
	if fm == nil {
		fm = map[string]any{}
	}
	return fm, string(body), nil
}
