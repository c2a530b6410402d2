package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitRepo(t *testing.T) {
	r := NewGitRepo(t)
	when := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	first := r.Commit("a.txt", "feat: a", "Ada", when)
	second := r.CommitFile("dir/b.txt", "content", "fix: b", "Lin", when.Add(time.Hour))

	assert.NotEqual(t, first, second)
	head := r.Head()
	assert.Equal(t, second, head.Hash.String())
	assert.Equal(t, "fix: b", head.Message)
	assert.Equal(t, "Lin", head.Author.Name)
	assert.Equal(t, "refs/heads/master", r.HeadRef())

	data, err := os.ReadFile(filepath.Join(r.Dir, "dir", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}
