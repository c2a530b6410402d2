// Package errors defines the errors gitscribe reports to users. Each carries
// a category, which decides the process exit code, the underlying cause and
// hints on how to recover.
package errors

import (
	stderrors "errors"
)

// Category classifies a CLIError.
type Category int

const (
	// Argument errors come from invalid flags or flag values.
	Argument Category = iota
	// Configuration errors come from a missing or invalid config file.
	Configuration
	// Prerequisite errors mean the project is not in a state to release:
	// no repository, no git binary, uncommitted changes.
	Prerequisite
	// Runtime errors are failures while reading history or writing files.
	Runtime
)

func (c Category) String() string {
	switch c {
	case Argument:
		return "argument"
	case Configuration:
		return "configuration"
	case Prerequisite:
		return "prerequisite"
	default:
		return "runtime"
	}
}

// CLIError is an error meant to be shown to the user as is.
type CLIError struct {
	Category Category
	Message  string
	// Cause is the wrapped error, shown on its own line.
	Cause error
	// Usage is an example invocation for argument errors.
	Usage string
	Hints []string
}

func (e *CLIError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// WithUsage sets the example invocation and returns e.
func (e *CLIError) WithUsage(usage string) *CLIError {
	e.Usage = usage
	return e
}

// New returns a CLIError without a cause.
func New(category Category, message string, hints ...string) *CLIError {
	return &CLIError{Category: category, Message: message, Hints: hints}
}

// Wrap returns a CLIError describing err, or nil when err is nil.
func Wrap(err error, category Category, message string, hints ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: category, Message: message, Cause: err, Hints: hints}
}

// As returns the first CLIError in err's chain, or nil.
func As(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
