package commit

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLogLine is returned when a history line lacks a field tag.
	ErrMalformedLogLine = errors.New("malformed log line")
	// ErrMalformedTimestamp is returned when the DATE field is not ISO-8601 strict.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// ErrMissingVersionSuffix is returned when a release marker message does not
	// end in MAJOR.MINOR.PATCH.
	ErrMissingVersionSuffix = errors.New("missing version suffix")
)

// ParseError describes a history line that could not be turned into a Record.
// Err is one of the package sentinels so callers can use errors.Is.
type ParseError struct {
	// Line is the 1-based position of the line in the feed, 0 when unknown.
	Line   int
	Text   string
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s (%q)", e.Line, msg, e.Text)
	}
	return fmt.Sprintf("%s (%q)", msg, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// VersionError is returned when a release marker carries no usable version.
type VersionError struct {
	ID      string
	Message string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("release commit %s %q: %v", e.ID, e.Message, ErrMissingVersionSuffix)
}

func (e *VersionError) Unwrap() error {
	return ErrMissingVersionSuffix
}
