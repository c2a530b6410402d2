package changelog

import (
	"fmt"
	"time"

	"github.com/gitscribe/gitscribe/internal/commit"
)

// Options configures a Generate run.
type Options struct {
	// Classifier classifies messages; nil uses the default markers.
	Classifier *commit.Classifier
	// Links resolves commit URLs; the zero value disables links.
	Links commit.LinkResolver
	// PendingVersion is the version about to be stamped, e.g. "1.4.0".
	PendingVersion string
	// Now stamps the pending release. Defaults to time.Now.
	Now func() time.Time
}

// Generate parses raw history lines, appends the pending release marker and
// buckets the result. Any error aborts the whole run.
func Generate(lines []string, opts Options) (*Group, error) {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = commit.NewClassifier(commit.DefaultClassifierConfig())
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	records, err := commit.NewParser(classifier, opts.Links).ParseAll(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}

	records = append(records, PendingMarker(classifier, opts.PendingVersion, now()))

	group, err := Bucket(records)
	if err != nil {
		return nil, fmt.Errorf("bucketing changes: %w", err)
	}
	return group, nil
}

// PendingMarker builds the synthetic release marker for version, which has
// not been committed yet.
func PendingMarker(c *commit.Classifier, version string, at time.Time) commit.Record {
	return commit.Record{
		ID:        commit.PendingID,
		Author:    commit.PendingAuthor,
		Message:   c.ReleaseMessage(version),
		Timestamp: at,
		Category:  commit.Release,
	}
}
