package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/vaultcopy/internal/index"
)

func runIndex(args ...string) (string, string, error) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"index"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestIndexCommandRecordsRun(t *testing.T) {
	root := fixtureVault(t)
	dbPath := filepath.Join(t.TempDir(), "vault.db")

	out, _, err := runIndex("--root", root, "--db", dbPath, "--include-tag", "public")
	require.NoError(t, err)

	runID := strings.TrimSpace(out)
	_, err = uuid.Parse(runID)
	assert.NoError(t, err, "expected a run ID on stdout, got %q", out)

	db, err := index.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	included, err := db.IncludedPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "assets/img.png", "b.md"}, included)

	last, err := db.LastRun()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, runID, last.ID)
	assert.Equal(t, []string{"public"}, last.IncludeTags)
	assert.Equal(t, 5, last.FileCount)
	assert.Equal(t, 3, last.IncludedCount)
}

func TestIndexCommandSnapshotReplacesPrevious(t *testing.T) {
	root := fixtureVault(t)
	dbPath := filepath.Join(t.TempDir(), "vault.db")

	_, _, err := runIndex("--root", root, "--db", dbPath, "--include-tag", "public")
	require.NoError(t, err)
	_, _, err = runIndex("--root", root, "--db", dbPath, "--include-tag", "private")
	require.NoError(t, err)

	db, err := index.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	included, err := db.IncludedPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"c.md"}, included)
}
