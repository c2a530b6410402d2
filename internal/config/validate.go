package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gitscribe/gitscribe/internal/changelog"
	"github.com/gitscribe/gitscribe/internal/version"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateYAMLSyntax checks if the YAML file has valid syntax.
// Returns nil if valid, or a ValidationError with line/column information if invalid.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Missing file is not an error - will use defaults
		}
		if os.IsPermission(err) {
			return &ValidationError{
				FilePath: filePath,
				Message:  "permission denied",
			}
		}
		return &ValidationError{
			FilePath: filePath,
			Message:  err.Error(),
		}
	}

	// Empty file is valid - will use defaults
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		var typeError *yaml.TypeError
		if errors.As(err, &typeError) {
			// yaml.TypeError contains multiple error strings
			return &ValidationError{
				FilePath: filePath,
				Message:  strings.Join(typeError.Errors, "; "),
			}
		}

		// Try to extract line/column from yaml error message
		// yaml.v3 errors typically include "line X" information
		line, column := extractLineColumn(err.Error())
		return &ValidationError{
			FilePath: filePath,
			Line:     line,
			Column:   column,
			Message:  cleanYAMLError(err.Error()),
		}
	}

	return nil
}

// ValidateYAMLSyntaxFromBytes checks if YAML data has valid syntax.
// Returns nil if valid, or a ValidationError if invalid.
func ValidateYAMLSyntaxFromBytes(data []byte, filePath string) error {
	// Empty data is valid - will use defaults
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		line, column := extractLineColumn(err.Error())
		return &ValidationError{
			FilePath: filePath,
			Line:     line,
			Column:   column,
			Message:  cleanYAMLError(err.Error()),
		}
	}

	return nil
}

// ValidateConfigValues validates configuration values against expected types and constraints.
// Returns nil if valid, or a ValidationError with field information if invalid.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	invalid := func(field, format string, args ...any) error {
		return &ValidationError{
			FilePath: filePath,
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
		}
	}

	if _, err := version.Parse(cfg.Version); err != nil {
		return invalid("version", "must be MAJOR.MINOR.PATCH, got %q", cfg.Version)
	}

	if strings.TrimSpace(cfg.ReleasePrefix) == "" {
		return invalid("release_prefix", "is required")
	}

	if cfg.HistorySource != HistorySourceGit && cfg.HistorySource != HistorySourceGoGit {
		return invalid("history_source", "must be one of %s, %s; got %q",
			HistorySourceGit, HistorySourceGoGit, cfg.HistorySource)
	}

	for i, out := range cfg.ChangelogOutputs {
		if !changelog.IsTemplate(out.Template) {
			return invalid(fmt.Sprintf("changelog_outputs[%d].template", i),
				"unknown template %q (available: %s)", out.Template, strings.Join(changelog.Templates(), ", "))
		}
		if strings.TrimSpace(out.Path) == "" {
			return invalid(fmt.Sprintf("changelog_outputs[%d].path", i), "is required")
		}
	}

	// Files are synced concurrently, so two entries must never name one file.
	syncPaths := make(map[string]int, len(cfg.VersionSyncFiles))
	for i, f := range cfg.VersionSyncFiles {
		if strings.TrimSpace(f.Path) == "" {
			return invalid(fmt.Sprintf("version_sync_files[%d].path", i), "is required")
		}
		resolved := filepath.Clean(cfg.ResolvePath(f.Path))
		if j, ok := syncPaths[resolved]; ok {
			return invalid(fmt.Sprintf("version_sync_files[%d].path", i),
				"%q is the same file as version_sync_files[%d]", f.Path, j)
		}
		syncPaths[resolved] = i
	}

	for i, name := range cfg.CommandsThatRelease {
		if _, err := version.ParseDesignation(name); err != nil {
			return invalid(fmt.Sprintf("commands_that_release[%d]", i), "%s", err.Error())
		}
	}

	for code := range cfg.EmojiShorthand {
		if strings.TrimSpace(code) == "" {
			return invalid("emoji_shorthand", "shortcodes must not be empty")
		}
	}

	return nil
}

// extractLineColumn attempts to extract line and column numbers from a YAML error message.
// Returns 0, 0 if unable to extract.
func extractLineColumn(errMsg string) (line, column int) {
	// yaml.v3 errors look like: "yaml: line 5: could not find expected ':'"
	var l, c int
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// cleanYAMLError removes the "yaml: line X:" prefix from error messages for cleaner output.
func cleanYAMLError(errMsg string) string {
	// Remove "yaml: line X:" prefix
	if idx := strings.LastIndex(errMsg, ": "); idx > 0 {
		// Check if this looks like a yaml error
		if strings.HasPrefix(errMsg, "yaml:") {
			return errMsg[idx+2:]
		}
	}
	return errMsg
}
