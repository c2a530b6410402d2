package changelog

import (
	"fmt"
	"sort"
	"time"

	"github.com/gitscribe/gitscribe/internal/commit"
)

// marker is a release commit together with its extracted version.
type marker struct {
	record  commit.Record
	version string
}

// Bucket assigns every feature and fix to the release that first shipped it
// and returns the releases newest first.
//
// A change belongs to the earliest release whose timestamp is at or after the
// change's own, not to the most recent release overall. Every release appears
// in the result, with an empty list when nothing shipped in it. Unclassified
// records are ignored. Release versions are all extracted before any change
// is assigned, so a malformed marker aborts the run with no partial output.
func Bucket(records []commit.Record) (*Group, error) {
	var releases []marker
	var changes []commit.Record

	for _, r := range records {
		switch r.Category {
		case commit.Release:
			v, err := commit.ReleaseVersion(r)
			if err != nil {
				return nil, err
			}
			releases = append(releases, marker{record: r, version: v})
		case commit.Feature, commit.Fix:
			changes = append(changes, r)
		}
	}

	sort.SliceStable(releases, func(i, j int) bool {
		return releases[i].record.Timestamp.After(releases[j].record.Timestamp)
	})

	group := NewGroup()
	for _, m := range releases {
		group.Insert(Release{
			Version: m.version,
			Date:    m.record.Timestamp,
			Pending: m.record.IsPending(),
		})
	}

	for _, c := range changes {
		m, ok := shippedIn(releases, c.Timestamp)
		if !ok {
			return nil, fmt.Errorf("%w: commit %s at %s is newer than every release",
				ErrInconsistentVersionState, c.ID, c.Timestamp.Format(time.RFC3339))
		}
		if err := group.Append(m.version, c); err != nil {
			return nil, err
		}
	}

	return group, nil
}

// shippedIn returns the release with the smallest timestamp not before at.
// releases must be sorted newest first; on equal timestamps the earlier
// entry in that order wins.
func shippedIn(releases []marker, at time.Time) (marker, bool) {
	var best marker
	found := false
	for _, m := range releases {
		if m.record.Timestamp.Before(at) {
			continue
		}
		if !found || m.record.Timestamp.Before(best.record.Timestamp) {
			best = m
			found = true
		}
	}
	return best, found
}
