package changelog

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Document is the data handed to changelog templates.
type Document struct {
	// Version is the release being generated.
	Version string
	// Date is the generation date.
	Date time.Time
	// Releases are the Group's sections, newest first.
	Releases []Release
}

// NewDocument wraps a Group for rendering, keeping its order.
func NewDocument(version string, date time.Time, g *Group) Document {
	return Document{
		Version:  version,
		Date:     date,
		Releases: g.Releases(),
	}
}

// Render executes the named embedded template with doc and writes the result.
//
// The function is idempotent - given the same input, it produces identical output.
func Render(w io.Writer, name string, doc Document) error {
	tmpl, err := loadTemplate(name)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("rendering %s changelog: %w", name, err)
	}
	return nil
}

// RenderMarkdown renders doc with the built-in Markdown template.
func RenderMarkdown(w io.Writer, doc Document) error {
	return Render(w, TemplateMarkdown, doc)
}

// RenderString is a convenience function that renders to a string.
func RenderString(name string, doc Document) (string, error) {
	var b strings.Builder
	if err := Render(&b, name, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}
