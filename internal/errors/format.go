package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	headerStyle = color.New(color.FgRed, color.Bold)
	causeStyle  = color.New(color.Faint)
	usageStyle  = color.New(color.FgCyan)
	hintStyle   = color.New(color.FgYellow)
)

// Format renders err for the terminal:
//
//	error (prerequisite): working tree has uncommitted changes: main.go
//	  caused by: ...
//	  usage: gitscribe init --version 1.2.3
//	hint: Commit or stash your changes before releasing
//
// Errors that are not CLIErrors are shown as runtime errors. Colors follow
// color.NoColor.
func Format(err error) string {
	if err == nil {
		return ""
	}
	cliErr := As(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error()}
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Sprintf("error (%s):", cliErr.Category))
	sb.WriteString(" " + cliErr.Message + "\n")

	for _, cause := range causeLines(cliErr.Cause) {
		sb.WriteString(causeStyle.Sprint("  caused by: "+cause) + "\n")
	}
	if cliErr.Usage != "" {
		sb.WriteString(usageStyle.Sprint("  usage: "+cliErr.Usage) + "\n")
	}
	for _, hint := range cliErr.Hints {
		sb.WriteString(hintStyle.Sprint("hint:") + " " + hint + "\n")
	}
	return sb.String()
}

// Fprint writes Format(err) to w.
func Fprint(w io.Writer, err error) {
	fmt.Fprint(w, Format(err))
}

// causeLines splits joined causes (errors.Join) onto separate lines.
func causeLines(cause error) []string {
	if cause == nil {
		return nil
	}
	if joined, ok := cause.(interface{ Unwrap() []error }); ok {
		var lines []string
		for _, e := range joined.Unwrap() {
			lines = append(lines, causeLines(e)...)
		}
		return lines
	}
	return []string{cause.Error()}
}
