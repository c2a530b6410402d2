package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitscribe/gitscribe/internal/changelog"
	"github.com/gitscribe/gitscribe/internal/commit"
	clierrors "github.com/gitscribe/gitscribe/internal/errors"
	"github.com/gitscribe/gitscribe/internal/release"
	"github.com/gitscribe/gitscribe/internal/version"
)

var bumpDescriptions = map[version.Designation]string{
	version.Patch: "Release a patch version (1.2.3 → 1.2.4)",
	version.Minor: "Release a minor version (1.2.3 → 1.3.0)",
	version.Major: "Release a major version (1.2.3 → 2.0.0)",
}

func init() {
	for _, d := range version.Designations() {
		rootCmd.AddCommand(newBumpCmd(d))
	}
}

func newBumpCmd(d version.Designation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   d.String(),
		Short: bumpDescriptions[d],
		Long: fmt.Sprintf(`%s.

Steps:
  1. Refuse to run when the working tree has uncommitted changes
  2. Bump the version stored in the config
  3. Generate the changelog from git history
  4. Write the config, every version_sync_files entry and the changelogs
  5. Commit everything as "<release_prefix><version>"

When branch_for_release is enabled and %q is listed in
commands_that_release, a release branch is created after the commit.`, bumpDescriptions[d], d.String()),
		Example: fmt.Sprintf(`  gitscribe %[1]s
  gitscribe %[1]s --dry-run     # Show the diff without writing
  gitscribe %[1]s --no-commit   # Write files, commit yourself`, d),
		Args:    cobra.NoArgs,
		GroupID: GroupRelease,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBump(cmd, d)
		},
	}
	cmd.Flags().Bool("dry-run", false, "Print the changes as a diff without writing or committing")
	cmd.Flags().Bool("no-commit", false, "Write files but skip the commit and release branch")
	return cmd
}

type bumpOptions struct {
	Dir         string
	ConfigPath  string
	Designation version.Designation
	DryRun      bool
	NoCommit    bool
	Now         func() time.Time
}

func runBump(cmd *cobra.Command, d version.Designation) error {
	opts := bumpOptions{Dir: workDir(), Designation: d}
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	opts.NoCommit, _ = cmd.Flags().GetBool("no-commit")
	if opts.DryRun && opts.NoCommit {
		return clierrors.InvalidFlagCombination("--dry-run --no-commit", "--dry-run never commits; drop --no-commit")
	}

	return bump(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
}

func bump(ctx context.Context, out, errOut io.Writer, opts bumpOptions) error {
	p, err := openProject(opts.Dir, opts.ConfigPath, errOut, true)
	if err != nil {
		return err
	}

	_, err = release.Run(ctx, release.Options{
		Config:      p.cfg,
		Repo:        p.repo,
		Designation: opts.Designation,
		DryRun:      opts.DryRun,
		NoCommit:    opts.NoCommit,
		Out:         out,
		Now:         opts.Now,
	})
	return releaseError(err, p.cfg.Version)
}

// releaseError maps workflow failures onto CLI errors.
func releaseError(err error, storedVersion string) error {
	if err == nil {
		return nil
	}

	var dirty *release.DirtyTreeError
	switch {
	case errors.As(err, &dirty):
		return clierrors.UncommittedChanges(dirty.Paths())
	case errors.Is(err, release.ErrNoConfigFile):
		return clierrors.ConfigFileNotFound("")
	case errors.Is(err, version.ErrInvalidVersion):
		return clierrors.InvalidStoredVersion(storedVersion, err)
	case isGenerationError(err):
		return clierrors.ChangelogGenerationFailed(err)
	default:
		return clierrors.ReleaseFailed(err)
	}
}

func isGenerationError(err error) bool {
	return errors.Is(err, commit.ErrMalformedLogLine) ||
		errors.Is(err, commit.ErrMalformedTimestamp) ||
		errors.Is(err, commit.ErrMissingVersionSuffix) ||
		errors.Is(err, changelog.ErrInconsistentVersionState)
}
