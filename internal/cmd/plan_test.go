package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPlan(args ...string) (string, string, error) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"plan"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestPlanCommandPrintsManifest(t *testing.T) {
	root := fixtureVault(t)

	out, _, err := runPlan("--root", root, "--include-tag", "public")
	require.NoError(t, err)

	assert.Equal(t, []string{"a.md", "assets/img.png", "b.md"}, strings.Fields(out))
}

func TestPlanCommandWritesNothing(t *testing.T) {
	root := fixtureVault(t)

	before := countFiles(t, root)
	_, _, err := runPlan("--root", root, "--include-tag", "public")
	require.NoError(t, err)
	assert.Equal(t, before, countFiles(t, root))
}

func TestPlanCommandNeedsNoDestination(t *testing.T) {
	root := fixtureVault(t)

	_, _, err := runPlan("--root", root, "--include-tag", "public")
	assert.NoError(t, err)
}

func TestPlanCommandEmptyFilterSelectsAll(t *testing.T) {
	root := writeVault(t, map[string]string{
		"a.md": "one\n",
		"b.md": "two\n",
	})

	out, _, err := runPlan("--root", root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.md"}, strings.Fields(out))
}

func countFiles(t *testing.T, root string) int {
	t.Helper()
	count := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	require.NoError(t, err)
	return count
}
