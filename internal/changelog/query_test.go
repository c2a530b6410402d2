package changelog

import (
	"errors"
	"testing"

	"github.com/gitscribe/gitscribe/internal/commit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_InsertKeepsFirst(t *testing.T) {
	g := NewGroup()
	assert.True(t, g.Insert(Release{Version: "1.0.0", Pending: true}))
	assert.False(t, g.Insert(Release{Version: "1.0.0"}))

	r, err := g.Get("1.0.0")
	require.NoError(t, err)
	assert.True(t, r.Pending)
	assert.Equal(t, 1, g.Len())
}

func TestGroup_Append(t *testing.T) {
	g := NewGroup()
	g.Insert(Release{Version: "1.0.0"})

	require.NoError(t, g.Append("1.0.0", commit.Record{ID: "a", Category: commit.Fix}))

	err := g.Append("2.0.0", commit.Record{ID: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInconsistentVersionState)
	assert.Equal(t, 1, g.ChangeCount())
}

func TestGroup_Get(t *testing.T) {
	g := NewGroup()
	g.Insert(Release{Version: "0.6.0"})
	g.Insert(Release{Version: "0.5.0"})

	tests := map[string]struct {
		version string
		wantErr bool
	}{
		"bare":          {version: "0.6.0"},
		"v prefix":      {version: "v0.6.0"},
		"upper V":       {version: "V0.5.0"},
		"padded":        {version: " 0.5.0 "},
		"missing":       {version: "9.9.9", wantErr: true},
		"empty version": {version: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r, err := g.Get(tt.version)
			if tt.wantErr {
				var nf *VersionNotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, []string{"0.6.0", "0.5.0"}, nf.AvailableVersions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, NormalizeVersion(tt.version), r.Version)
		})
	}
}

func TestGroup_ReturnsCopies(t *testing.T) {
	newGroup := func() *Group {
		g := NewGroup()
		g.Insert(Release{Version: "1.0.0", Pending: true})
		require.NoError(t, g.Append("1.0.0", commit.Record{ID: "a", Message: "feat: one", Category: commit.Feature}))
		require.NoError(t, g.Append("1.0.0", commit.Record{ID: "b", Message: "fix: two", Category: commit.Fix}))
		return g
	}

	tests := map[string]struct {
		mutate func(g *Group)
	}{
		"releases slice": {mutate: func(g *Group) {
			g.Releases()[0].Version = "mutated"
		}},
		"releases changes": {mutate: func(g *Group) {
			rs := g.Releases()
			rs[0].Changes[0].Message = "mutated"
			rs[0].Changes = append(rs[0].Changes[:1], commit.Record{ID: "z"})
		}},
		"get changes": {mutate: func(g *Group) {
			r, err := g.Get("1.0.0")
			require.NoError(t, err)
			r.Changes[1].Category = commit.Unclassified
		}},
		"pending changes": {mutate: func(g *Group) {
			r, ok := g.Pending()
			require.True(t, ok)
			r.Changes[0].ID = "mutated"
		}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := newGroup()
			tt.mutate(g)

			assert.Equal(t, []string{"1.0.0"}, g.Versions())
			r, err := g.Get("1.0.0")
			require.NoError(t, err)
			require.Len(t, r.Changes, 2)
			assert.Equal(t, "a", r.Changes[0].ID)
			assert.Equal(t, "feat: one", r.Changes[0].Message)
			assert.Equal(t, "b", r.Changes[1].ID)
			assert.Equal(t, commit.Fix, r.Changes[1].Category)
		})
	}
}

func TestGroup_InsertCopiesChanges(t *testing.T) {
	changes := make([]commit.Record, 1, 4)
	changes[0] = commit.Record{ID: "a", Category: commit.Feature}

	g := NewGroup()
	g.Insert(Release{Version: "1.0.0", Changes: changes})
	require.NoError(t, g.Append("1.0.0", commit.Record{ID: "b", Category: commit.Fix}))

	assert.Empty(t, changes[:cap(changes)][1].ID)
}

func TestGroup_Pending(t *testing.T) {
	g := NewGroup()
	_, ok := g.Pending()
	assert.False(t, ok)

	g.Insert(Release{Version: "2.0.0", Pending: true})
	g.Insert(Release{Version: "1.0.0"})
	r, ok := g.Pending()
	require.True(t, ok)
	assert.Equal(t, "2.0.0", r.Version)
}

func TestRelease_Categories(t *testing.T) {
	r := Release{Changes: []commit.Record{
		{ID: "1", Category: commit.Fix},
		{ID: "2", Category: commit.Feature},
		{ID: "3", Category: commit.Fix},
	}}

	assert.Len(t, r.Features(), 1)
	assert.Len(t, r.Fixes(), 2)
	assert.Equal(t, "3", r.Fixes()[1].ID)
	assert.False(t, r.IsEmpty())
}
