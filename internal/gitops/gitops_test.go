package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func TestEnsureRepoAndCommit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	assert.False(t, IsRepo(dir))
	require.NoError(t, EnsureRepo(dir))
	assert.True(t, IsRepo(dir))

	// Idempotent.
	require.NoError(t, EnsureRepo(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "accounts.csv"), []byte("id,name\n"), 0o644))

	hash, err := Commit(dir, "export snapshot", Author{Name: "Finbook", Email: "export@finbook.dev"})
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestCommitNothingStaged(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, EnsureRepo(dir))

	_, err := Commit(dir, "empty", Author{Name: "Finbook", Email: "export@finbook.dev"})
	assert.Error(t, err, "committing with nothing staged fails")
}
