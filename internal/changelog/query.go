package changelog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gitscribe/gitscribe/internal/commit"
)

// ErrInconsistentVersionState is returned when a change resolves to a release
// that is not part of the Group.
var ErrInconsistentVersionState = errors.New("inconsistent version state")

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// Insert appends an empty-or-filled release section. It returns false, and
// leaves the Group untouched, when the version is already present.
func (g *Group) Insert(r Release) bool {
	if _, ok := g.index[r.Version]; ok {
		return false
	}
	g.index[r.Version] = len(g.releases)
	g.releases = append(g.releases, r.clone())
	return true
}

// Append adds a change to an existing release section.
func (g *Group) Append(version string, c commit.Record) error {
	i, ok := g.index[version]
	if !ok {
		return fmt.Errorf("%w: release %s for commit %s is missing", ErrInconsistentVersionState, version, c.ID)
	}
	g.releases[i].Changes = append(g.releases[i].Changes, c)
	return nil
}

// Get returns the release section for version.
// Accepts both "v0.6.0" and "0.6.0".
func (g *Group) Get(version string) (Release, error) {
	if i, ok := g.index[NormalizeVersion(version)]; ok {
		return g.releases[i].clone(), nil
	}
	return Release{}, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: g.Versions(),
	}
}

// Versions returns all version keys in iteration order.
func (g *Group) Versions() []string {
	versions := make([]string, len(g.releases))
	for i, r := range g.releases {
		versions[i] = r.Version
	}
	return versions
}

// Releases returns the release sections in iteration order.
// Sections and their Changes are copies; mutating them does not affect the Group.
func (g *Group) Releases() []Release {
	out := make([]Release, len(g.releases))
	for i, r := range g.releases {
		out[i] = r.clone()
	}
	return out
}

// Len returns the number of release sections.
func (g *Group) Len() int {
	return len(g.releases)
}

// ChangeCount returns the number of changes across all releases.
func (g *Group) ChangeCount() int {
	n := 0
	for _, r := range g.releases {
		n += len(r.Changes)
	}
	return n
}

// Pending returns the synthetic release being generated, if any.
func (g *Group) Pending() (Release, bool) {
	for _, r := range g.releases {
		if r.Pending {
			return r.clone(), true
		}
	}
	return Release{}, false
}

// NormalizeVersion normalizes a version string by removing the "v" prefix.
// This allows accepting both "v0.6.0" and "0.6.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}
