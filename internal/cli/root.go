// Package cli implements the gitscribe command line.
package cli

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	clierrors "github.com/gitscribe/gitscribe/internal/errors"
	"github.com/gitscribe/gitscribe/internal/git"
)

// Command groups shown in help output.
const (
	GroupGettingStarted = "getting-started"
	GroupRelease        = "release"
)

var rootCmd = &cobra.Command{
	Use:   "gitscribe",
	Short: "Changelog generation and semantic version bumps from git history",
	Long: `gitscribe classifies your commits, groups them under the release they
shipped in and renders a changelog. Each bump stores the new version,
syncs it into your manifests and records everything in a release commit.

Commits are classified by message:
  feat: ...    listed under Features
  fix: ...     listed under Fixes
Everything else is left out of the changelog.`,
	Example: `  gitscribe init --version 0.1.0 --repo https://github.com/acme/widget
  gitscribe preview --bump minor
  gitscribe minor --dry-run
  gitscribe patch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			logger := log.New(cmd.ErrOrStderr(), "[debug] ", log.Ltime)
			git.SetDebugLogger(logger.Printf)
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGettingStarted, Title: "Getting Started:"},
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
	)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default: .gitscribe.yml in the current directory)")
	rootCmd.PersistentFlags().Bool("debug", false, "Print debug output to stderr")
}

// Execute runs the root command and prints any error to stderr.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// printError prints err with its cause and hints.
func printError(w io.Writer, err error) {
	clierrors.Fprint(w, err)
}

// workDir returns the directory commands operate on.
func workDir() string {
	if dir, err := os.Getwd(); err == nil {
		return dir
	}
	return "."
}
