package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

// writeFile creates a file (and parents) under root with empty content.
func writeFile(t *testing.T, root string, rel string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
}

func newResolver(t *testing.T, root string) *Resolver {
	t.Helper()
	r, err := New(root)
	require.NoError(t, err)
	return r
}

func TestResolveRelativeToSource(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes/img.png")
	writeFile(t, root, "notes/deep.md")
	r := newResolver(t, root)

	got, ok := r.Resolve("img.png", "notes/deep.md")
	require.True(t, ok)
	assert.Equal(t, "notes/img.png", got)
}

func TestResolveExtensionInferenceAgainstRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Other Note.md")
	writeFile(t, root, "notes/source.md")
	r := newResolver(t, root)

	got, ok := r.Resolve("Other Note", "notes/source.md")
	require.True(t, ok)
	assert.Equal(t, "Other Note.md", got)
}

func TestResolveLiteralAgainstRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "assets/diagram.png")
	writeFile(t, root, "notes/source.md")
	r := newResolver(t, root)

	got, ok := r.Resolve("assets/diagram.png", "notes/source.md")
	require.True(t, ok)
	assert.Equal(t, "assets/diagram.png", got)
}

func TestResolveSourceDirectoryWinsOverRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "img.png")
	writeFile(t, root, "notes/img.png")
	writeFile(t, root, "notes/source.md")
	r := newResolver(t, root)

	got, ok := r.Resolve("img.png", "notes/source.md")
	require.True(t, ok)
	assert.Equal(t, "notes/img.png", got, "rule 1 must win over rule 3")
}

func TestResolveUnresolved(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md")
	r := newResolver(t, root)

	_, ok := r.Resolve("missing.png", "a.md")
	assert.False(t, ok)

	_, ok = r.Resolve("", "a.md")
	assert.False(t, ok)
}

func TestResolveDirectoryIsNotAFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0755))
	writeFile(t, root, "a.md")
	r := newResolver(t, root)

	_, ok := r.Resolve("assets", "a.md")
	assert.False(t, ok)
}

func TestResolveUnicodeEquivalence(t *testing.T) {
	root := t.TempDir()
	// File on disk in decomposed form, link written in composed form.
	decomposed := norm.NFD.String("café.md")
	writeFile(t, root, decomposed)
	writeFile(t, root, "source.md")
	r := newResolver(t, root)

	composed := norm.NFC.String("café")
	got, ok := r.Resolve(composed, "source.md")
	require.True(t, ok)
	assert.Equal(t, decomposed, got)
}

func TestResolveSymlinkCollapsesToCanonicalPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "real.md")
	writeFile(t, root, "source.md")
	require.NoError(t, os.Symlink(filepath.Join(root, "real.md"), filepath.Join(root, "alias.md")))
	r := newResolver(t, root)

	got, ok := r.Resolve("alias.md", "source.md")
	require.True(t, ok)
	assert.Equal(t, "real.md", got, "symlinked spelling must resolve to the canonical node")
}

func TestResolveRejectsEscapeFromVault(t *testing.T) {
	outside := t.TempDir()
	writeFile(t, outside, "secret.md")

	root := t.TempDir()
	writeFile(t, root, "source.md")
	require.NoError(t, os.Symlink(filepath.Join(outside, "secret.md"), filepath.Join(root, "escape.md")))
	r := newResolver(t, root)

	_, ok := r.Resolve("escape.md", "source.md")
	assert.False(t, ok)
}
