package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"hwgrade/service/etc"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// submission creates a local repository with a single commit.
func submission(t *testing.T) (string, string) {
	if _, err := exec.LookPath("git-upload-pack"); err != nil {
		t.Skip("git-upload-pack is not installed")
	}
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module homework\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("go.mod")
	require.NoError(t, err)
	hash, err := wt.Commit("submit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "student", Email: "student@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir, hash.String()
}

func TestAuth(t *testing.T) {
	c := &etc.Configuration{}
	assert.Nil(t, Auth(c))

	c.Git.Username = "grader"
	c.Git.Password = "token"
	assert.Equal(t, &http.BasicAuth{Username: "grader", Password: "token"}, Auth(c))
}

func TestClone(t *testing.T) {
	src, commit := submission(t)
	dst := filepath.Join(t.TempDir(), "clone")

	got, err := Clone(context.Background(), src, "", dst, nil)
	require.NoError(t, err)
	assert.Equal(t, commit, got)
	assert.FileExists(t, filepath.Join(dst, "go.mod"))
}

func TestCloneUnknownBranch(t *testing.T) {
	src, _ := submission(t)
	_, err := Clone(context.Background(), src, "no-such-branch", filepath.Join(t.TempDir(), "clone"), nil)
	assert.Error(t, err)
}

func TestCloneTemp(t *testing.T) {
	src, _ := submission(t)
	dir, cleanup, err := CloneTemp(context.Background(), src, "", nil)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "go.mod"))

	cleanup()
	assert.NoDirExists(t, dir)
}

func TestCloneMissingRepository(t *testing.T) {
	_, _, err := CloneTemp(context.Background(), filepath.Join(t.TempDir(), "missing"), "", nil)
	assert.Error(t, err)
}
