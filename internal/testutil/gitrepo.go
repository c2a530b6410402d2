// Package testutil provides test utilities and helpers for gitscribe tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// GitRepo is a temporary repository with a configured identity.
type GitRepo struct {
	t    *testing.T
	Dir  string
	Repo *git.Repository
}

// NewGitRepo initializes an empty repository in a temp directory.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "Test User"
	cfg.User.Email = "test@test.com"
	require.NoError(t, repo.SetConfig(cfg))

	return &GitRepo{t: t, Dir: dir, Repo: repo}
}

// Write creates or replaces name (relative to the worktree) without staging it.
func (r *GitRepo) Write(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.Dir, name)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
}

// Commit writes message into name and commits it as author at when.
func (r *GitRepo) Commit(name, message, author string, when time.Time) string {
	r.t.Helper()
	return r.CommitFile(name, message, message, author, when)
}

// CommitFile writes content into name and commits it as author at when,
// returning the commit hash.
func (r *GitRepo) CommitFile(name, content, message, author string, when time.Time) string {
	r.t.Helper()
	r.Write(name, content)

	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	_, err = wt.Add(name)
	require.NoError(r.t, err)

	sig := &object.Signature{Name: author, Email: "dev@test.com", When: when}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(r.t, err)
	return hash.String()
}

// Head returns the commit HEAD points at.
func (r *GitRepo) Head() *object.Commit {
	r.t.Helper()
	ref, err := r.Repo.Head()
	require.NoError(r.t, err)
	c, err := r.Repo.CommitObject(ref.Hash())
	require.NoError(r.t, err)
	return c
}

// HeadRef returns the full name of the ref HEAD points at, e.g. refs/heads/main.
func (r *GitRepo) HeadRef() string {
	r.t.Helper()
	ref, err := r.Repo.Head()
	require.NoError(r.t, err)
	return ref.Name().String()
}
