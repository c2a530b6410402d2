package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff returns the line-level diff between before and after, with
// "-", "+" and " " prefixes. It is empty when the texts are equal.
func LineDiff(before, after string) []string {
	if before == after {
		return nil
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []string
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, prefix+strings.TrimSuffix(line, "\n"))
		}
	}
	return out
}

// PrintDiff writes a colored unified-style diff of path's contents. Unchanged
// runs longer than context lines are collapsed.
func PrintDiff(out io.Writer, path, before, after string, context int) {
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(out, "%s\n%s\n", bold("--- "+path), bold("+++ "+path+" (new)"))

	lines := LineDiff(before, after)
	if len(lines) == 0 {
		fmt.Fprintln(out, dim("  (no changes)"))
		return
	}

	for i, line := range lines {
		switch line[0] {
		case '+':
			fmt.Fprintln(out, green(line))
		case '-':
			fmt.Fprintln(out, red(line))
		default:
			if nearChange(lines, i, context) {
				fmt.Fprintln(out, line)
			} else if i > 0 && nearChange(lines, i-1, context) {
				fmt.Fprintln(out, dim("@@"))
			}
		}
	}
}

// nearChange reports whether a changed line lies within context lines of i.
func nearChange(lines []string, i, context int) bool {
	for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
		if lines[j][0] != ' ' {
			return true
		}
	}
	return false
}
