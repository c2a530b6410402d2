package commit

import "time"

// Category is the semantic intent of a commit, derived from its message.
type Category int

const (
	// Unclassified commits carry no recognized marker and are dropped from changelogs.
	Unclassified Category = iota
	// Feature commits contain the "feat:" marker.
	Feature
	// Fix commits contain the "fix:" marker.
	Fix
	// Release commits contain the release prefix and end in a version number.
	Release
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case Feature:
		return "Feature"
	case Fix:
		return "Fix"
	case Release:
		return "Release"
	default:
		return "Unclassified"
	}
}

const (
	// PendingID is the commit id of the synthetic release marker for the
	// version being generated. It does not exist in history yet.
	PendingID = "HEAD"
	// PendingAuthor is the author recorded on the synthetic release marker.
	PendingAuthor = "gitscribe"
)

// Record is one parsed line of history.
type Record struct {
	ID        string
	Author    string
	Message   string
	Timestamp time.Time
	Category  Category
	// Link is the commit URL on the hosting provider, empty when unknown.
	Link string
}

// ShortID returns the abbreviated commit id used in rendered changelogs.
func (r Record) ShortID() string {
	if len(r.ID) < 8 {
		return r.ID
	}
	return r.ID[:8]
}

// IsPending reports whether r is the synthetic marker for the unreleased version.
func (r Record) IsPending() bool {
	return r.ID == PendingID
}
