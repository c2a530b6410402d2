package commit

import (
	"fmt"
	"strings"
	"time"
)

// Field tags of a history line, in the order they must appear.
const (
	tagID      = "COMMIT_ID:"
	tagAuthor  = "AUTHOR:"
	tagMessage = "MESSAGE:"
	tagDate    = "DATE:"
)

// LogFormat is the git log --pretty format producing lines Parser understands.
// It must be combined with --date=iso-strict.
const LogFormat = tagID + "%H " + tagAuthor + "%an " + tagMessage + "%s " + tagDate + "%cd"

// FormatLine encodes one commit exactly as `git log --pretty=format:LogFormat
// --date=iso-strict` would.
func FormatLine(id, author, subject string, when time.Time) string {
	return fmt.Sprintf("%s%s %s%s %s%s %s%s",
		tagID, id, tagAuthor, author, tagMessage, subject, tagDate, when.Format(time.RFC3339))
}

// Parser turns history lines into Records.
type Parser struct {
	classifier *Classifier
	links      LinkResolver
}

// NewParser returns a parser classifying with c and linking with links.
// A nil classifier uses DefaultClassifierConfig.
func NewParser(c *Classifier, links LinkResolver) *Parser {
	if c == nil {
		c = NewClassifier(DefaultClassifierConfig())
	}
	return &Parser{classifier: c, links: links}
}

// Parse parses a single history line.
func (p *Parser) Parse(line string) (Record, error) {
	id, author, message, date, err := splitFields(line)
	if err != nil {
		return Record{}, err
	}

	ts, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return Record{}, &ParseError{Text: line, Detail: fmt.Sprintf("DATE %q", date), Err: ErrMalformedTimestamp}
	}

	message = p.classifier.Normalize(message)
	rec := Record{
		ID:        id,
		Author:    author,
		Message:   message,
		Timestamp: ts,
		Category:  p.classifier.Classify(message),
	}
	if link, ok := p.links.Resolve(id); ok {
		rec.Link = link
	}
	return rec, nil
}

// ParseAll parses every non-blank line and drops unclassified records.
// The first failure aborts the whole parse; no partial result is returned.
func (p *Parser) ParseAll(lines []string) ([]Record, error) {
	records := make([]Record, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := p.Parse(line)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = i + 1
			}
			return nil, err
		}
		if rec.Category == Unclassified {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// splitFields cuts a line into its four tagged fields. The DATE tag is
// searched from the end so a subject mentioning "DATE:" still parses.
func splitFields(line string) (id, author, message, date string, err error) {
	malformed := func(tag string) error {
		return &ParseError{Text: line, Detail: "missing " + tag + " field", Err: ErrMalformedLogLine}
	}

	rest, ok := strings.CutPrefix(strings.TrimSpace(line), tagID)
	if !ok {
		return "", "", "", "", malformed(tagID)
	}
	id, rest, ok = strings.Cut(rest, tagAuthor)
	if !ok {
		return "", "", "", "", malformed(tagAuthor)
	}
	author, rest, ok = strings.Cut(rest, tagMessage)
	if !ok {
		return "", "", "", "", malformed(tagMessage)
	}
	i := strings.LastIndex(rest, tagDate)
	if i < 0 {
		return "", "", "", "", malformed(tagDate)
	}
	message, date = rest[:i], rest[i+len(tagDate):]

	id = strings.TrimSpace(id)
	if id == "" {
		return "", "", "", "", malformed(tagID)
	}
	return id, strings.TrimSpace(author), message, strings.TrimSpace(date), nil
}
