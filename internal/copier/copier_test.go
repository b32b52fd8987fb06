package copier

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func TestCopyPreservesSubpaths(t *testing.T) {
	root := t.TempDir()
	dest := t.TempDir()
	writeFile(t, root, "a.md", "alpha")
	writeFile(t, root, "deep/nested/img.png", "image-bytes")

	results, err := New(root, dest).Copy([]string{"a.md", "deep/nested/img.png"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	got, err := os.ReadFile(filepath.Join(dest, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(got))

	got, err = os.ReadFile(filepath.Join(dest, "deep", "nested", "img.png"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(got))
}

func TestCopyReportsChecksums(t *testing.T) {
	root := t.TempDir()
	dest := t.TempDir()
	writeFile(t, root, "a.md", "alpha")

	results, err := New(root, dest).Copy([]string{"a.md"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	sum := sha256.Sum256([]byte("alpha"))
	assert.Equal(t, hex.EncodeToString(sum[:]), results[0].Checksum)
	assert.Equal(t, int64(5), results[0].Bytes)
}

func TestCopyCreatesDestination(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(t.TempDir(), "not", "yet", "there")
	writeFile(t, root, "a.md", "alpha")

	_, err := New(root, dest).Copy([]string{"a.md"})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "a.md"))
}

func TestCopyFailsWhenDestinationLocked(t *testing.T) {
	root := t.TempDir()
	dest := t.TempDir()
	writeFile(t, root, "a.md", "alpha")

	other := flock.New(filepath.Join(dest, LockFileName))
	acquired, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, acquired)
	defer other.Unlock()

	_, err = New(root, dest).Copy([]string{"a.md"})
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dest, "a.md"))
}

func TestCopyMissingSourceFails(t *testing.T) {
	root := t.TempDir()
	dest := t.TempDir()

	_, err := New(root, dest).Copy([]string{"ghost.md"})
	assert.Error(t, err)
}

func TestCopyEmptyManifest(t *testing.T) {
	results, err := New(t.TempDir(), t.TempDir()).Copy(nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
