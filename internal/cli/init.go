package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gitscribe/gitscribe/internal/config"
	clierrors "github.com/gitscribe/gitscribe/internal/errors"
	"github.com/gitscribe/gitscribe/internal/output"
	"github.com/gitscribe/gitscribe/internal/version"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .gitscribe.yml config in the current directory",
	Long: `Create a commented .gitscribe.yml config in the current directory.

The config stores the current version, the repository URL used for commit
links, the changelog outputs and the manifests whose version is kept in sync.
Edit the file afterwards to enable version sync or release branches.

With --migrate, an existing gitscribe.json is converted to .gitscribe.yml
and the JSON file is kept as gitscribe.json.bak.`,
	Example: `  gitscribe init
  gitscribe init --version 1.4.0 --repo https://github.com/acme/widget
  gitscribe init --force
  gitscribe init --migrate --dry-run`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.GroupID = GroupGettingStarted
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("version", config.DefaultVersion, "Current version of the project")
	initCmd.Flags().String("repo", "", "Repository URL used to link commits")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config")
	initCmd.Flags().Bool("migrate", false, "Convert a legacy gitscribe.json to .gitscribe.yml")
	initCmd.Flags().Bool("dry-run", false, "With --migrate, report the migration without writing")
}

type initOptions struct {
	Dir     string
	Version string
	Repo    string
	Force   bool
	Migrate bool
	DryRun  bool
}

func runInit(cmd *cobra.Command, args []string) error {
	opts := initOptions{Dir: workDir()}
	opts.Version, _ = cmd.Flags().GetString("version")
	opts.Repo, _ = cmd.Flags().GetString("repo")
	opts.Force, _ = cmd.Flags().GetBool("force")
	opts.Migrate, _ = cmd.Flags().GetBool("migrate")
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")

	return initProject(cmd.OutOrStdout(), opts)
}

func initProject(out io.Writer, opts initOptions) error {
	if opts.DryRun && !opts.Migrate {
		return clierrors.InvalidFlagCombination("--dry-run", "only applies together with --migrate")
	}
	if opts.Migrate {
		return migrateProject(out, opts)
	}

	v, err := version.Parse(opts.Version)
	if err != nil {
		return clierrors.InvalidVersion(opts.Version)
	}

	path, err := config.WriteDefault(opts.Dir, v.String(), opts.Repo, opts.Force)
	if err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return clierrors.ConfigExists(path)
		}
		return clierrors.Wrap(err, clierrors.Runtime, "failed to write config")
	}

	output.PrintSuccess(out, fmt.Sprintf("Created %s (version %s)", filepath.Base(path), v))
	output.PrintHint(out, "Review the file, then run 'gitscribe preview' to see the next changelog")
	return nil
}

func migrateProject(out io.Writer, opts initOptions) error {
	result, err := config.MigrateProjectConfig(opts.Dir, opts.DryRun)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Configuration, "migration failed")
	}
	if !result.Success {
		output.PrintWarning(out, result.Message)
		return nil
	}

	if err := config.RemoveLegacyConfig(result.SourcePath, opts.DryRun); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime, "failed to back up legacy config")
	}

	output.PrintSuccess(out, result.Message)
	if !opts.DryRun {
		output.PrintHint(out, fmt.Sprintf("Previous config kept as %s.bak", filepath.Base(result.SourcePath)))
	}
	return nil
}
