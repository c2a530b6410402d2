package errors

import (
	"fmt"
	"strings"
)

// ConfigFileNotFound reports a missing config. An empty path means the
// project directory had none.
func ConfigFileNotFound(path string) *CLIError {
	msg := "no gitscribe config found"
	if path != "" {
		msg = fmt.Sprintf("config file not found: %s", path)
	}
	return New(Configuration, msg,
		"Run 'gitscribe init' to create .gitscribe.yml",
		"Or pass an existing file with --config <path>",
	)
}

// ConfigExists reports that init would overwrite a config.
func ConfigExists(path string) *CLIError {
	return New(Configuration,
		fmt.Sprintf("config file already exists: %s", path),
		"Use 'gitscribe init --force' to overwrite it",
		"Use 'gitscribe init --migrate' to convert a legacy gitscribe.json",
	)
}

func ConfigParseError(path string, err error) *CLIError {
	return Wrap(err, Configuration,
		fmt.Sprintf("failed to load config file: %s", path),
		"Check the file for YAML syntax errors",
		"Reset to defaults with: gitscribe init --force",
	)
}

// InvalidVersion reports a version flag that is not MAJOR.MINOR.PATCH.
func InvalidVersion(provided string) *CLIError {
	return New(Argument,
		fmt.Sprintf("invalid version: %q", provided),
		"Versions must be MAJOR.MINOR.PATCH, e.g. 0.4.1",
	).WithUsage("gitscribe init --version 1.2.3")
}

// InvalidStoredVersion reports a config whose version key cannot be bumped.
func InvalidStoredVersion(stored string, err error) *CLIError {
	return Wrap(err, Configuration,
		fmt.Sprintf("stored version %q cannot be bumped", stored),
		"Fix the version key in your config, e.g. version: 1.2.3",
	)
}

func NotGitRepository(dir string) *CLIError {
	return New(Prerequisite,
		fmt.Sprintf("not a git repository: %s", dir),
		"Run gitscribe from inside your project's repository",
		"Or initialize one with: git init",
	)
}

// UncommittedChanges lists the paths that block a release, at most ten of them.
func UncommittedChanges(paths []string) *CLIError {
	const maxListed = 10
	listed := paths
	more := ""
	if len(listed) > maxListed {
		more = fmt.Sprintf(" (and %d more)", len(listed)-maxListed)
		listed = listed[:maxListed]
	}
	return New(Prerequisite,
		fmt.Sprintf("working tree has uncommitted changes: %s%s", strings.Join(listed, ", "), more),
		"Commit or stash your changes before releasing",
		"Preview the release without writing anything: gitscribe <patch|minor|major> --dry-run",
	)
}

func GitNotFound() *CLIError {
	return New(Prerequisite,
		"git command not found",
		"Install git and make sure it is in your PATH",
		"Or read history without it: GITSCRIBE_HISTORY_SOURCE=go-git",
	)
}

// HistoryUnreadable reports a failure to read the commit log.
func HistoryUnreadable(err error) *CLIError {
	return Wrap(err, Runtime, "failed to read history",
		"Run with --debug to see the repository gitscribe opens",
	)
}

// ChangelogGenerationFailed reports history that cannot be bucketed into releases.
func ChangelogGenerationFailed(err error) *CLIError {
	return Wrap(err, Runtime,
		"failed to generate changelog",
		"Check that release commits end in MAJOR.MINOR.PATCH",
		"Check that release_prefix matches the prefix of your release commits",
		"Run with --debug to see the history gitscribe reads",
	)
}

// ReleaseFailed reports a failing write, commit or branch step.
func ReleaseFailed(err error) *CLIError {
	return Wrap(err, Runtime,
		"release failed",
		"Files written before the failure are left in place; review them with: git status",
		"Discard them with: git checkout -- . && git clean -fd",
	)
}

func InvalidFlagCombination(flags string, reason string) *CLIError {
	return New(Argument,
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'gitscribe <command> --help' to see valid options",
	)
}
