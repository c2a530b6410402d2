package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gitscribe/gitscribe/internal/commit"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a change category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
	Title string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[commit.Category]CategoryStyle{
	commit.Feature: {Color: color.New(color.FgGreen), Icon: "✓", Title: "Features"},
	commit.Fix:     {Color: color.New(color.FgYellow), Icon: "⚡", Title: "Fixes"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes every release of g to w with terminal styling,
// preserving the Group's order.
func FormatTerminal(g *Group, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, r := range g.Releases() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := FormatRelease(r, w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", r.Version, err)
		}
	}
	return nil
}

// FormatRelease writes a single release section to w.
func FormatRelease(r Release, w io.Writer, opts FormatOptions, width int) error {
	if err := writeVersionHeader(r, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if r.IsEmpty() {
		_, err := fmt.Fprintln(w, "  (no changes)")
		return err
	}

	sections := []struct {
		category commit.Category
		records  []commit.Record
	}{
		{commit.Feature, r.Features()},
		{commit.Fix, r.Fixes()},
	}
	for _, s := range sections {
		if len(s.records) == 0 {
			continue
		}
		if err := writeCategorySection(s.category, s.records, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeVersionHeader writes the version header line.
func writeVersionHeader(r Release, w io.Writer, opts FormatOptions) error {
	header := fmt.Sprintf("v%s (%s)", r.Version, r.Date.Format("2006-01-02"))
	if r.Pending {
		header += " - pending"
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeCategorySection writes a single category with its entries.
func writeCategorySection(category commit.Category, records []commit.Record, w io.Writer, opts FormatOptions, width int) error {
	style := categoryStyles[category]

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", style.Title); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(style.Title)); err != nil {
			return err
		}
	}

	for _, rec := range records {
		if err := writeEntry(rec, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry writes a single change with optional wrapping.
func writeEntry(rec commit.Record, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := fmt.Sprintf("%s (%s, %s)", rec.Message, rec.Author, rec.ShortID())

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatSummary returns a one-line summary of g, e.g. "3 releases, 7 changes".
func FormatSummary(g *Group) string {
	return fmt.Sprintf("%d %s, %d %s",
		g.Len(), plural(g.Len(), "release", "releases"),
		g.ChangeCount(), plural(g.ChangeCount(), "change", "changes"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
