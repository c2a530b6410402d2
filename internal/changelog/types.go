package changelog

import (
	"slices"
	"time"

	"github.com/gitscribe/gitscribe/internal/commit"
)

// Release is one version section of a changelog.
// Changes keeps the order in which commits appeared in the history feed.
type Release struct {
	Version string
	Date    time.Time
	// Pending is true for the synthetic release being generated right now.
	Pending bool
	Changes []commit.Record
}

// IsEmpty returns true if no change shipped in this release.
func (r Release) IsEmpty() bool {
	return len(r.Changes) == 0
}

// Features returns the feature commits of the release in source order.
func (r Release) Features() []commit.Record {
	return r.byCategory(commit.Feature)
}

// Fixes returns the fix commits of the release in source order.
func (r Release) Fixes() []commit.Record {
	return r.byCategory(commit.Fix)
}

// clone returns r with its own Changes backing array.
func (r Release) clone() Release {
	r.Changes = slices.Clone(r.Changes)
	return r
}

func (r Release) byCategory(c commit.Category) []commit.Record {
	var out []commit.Record
	for _, rec := range r.Changes {
		if rec.Category == c {
			out = append(out, rec)
		}
	}
	return out
}

// Group is the version-keyed output of bucketing. Iteration order is the
// order in which versions were inserted, which Bucket makes newest first.
// Renderers must preserve it.
type Group struct {
	releases []Release
	index    map[string]int
}

// NewGroup returns an empty Group.
func NewGroup() *Group {
	return &Group{index: make(map[string]int)}
}
