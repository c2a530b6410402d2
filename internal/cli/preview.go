package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitscribe/gitscribe/internal/changelog"
	"github.com/gitscribe/gitscribe/internal/commit"
	clierrors "github.com/gitscribe/gitscribe/internal/errors"
	"github.com/gitscribe/gitscribe/internal/git"
	"github.com/gitscribe/gitscribe/internal/output"
	"github.com/gitscribe/gitscribe/internal/progress"
	"github.com/gitscribe/gitscribe/internal/version"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the changelog the next bump would produce",
	Long: `Show the changelog the next bump would produce, without writing anything.

The pending release is labeled with the version the chosen bump would
create. Use --watch to refresh the preview whenever a commit lands.`,
	Example: `  gitscribe preview
  gitscribe preview --bump minor
  gitscribe preview --plain > notes.txt
  gitscribe preview --watch`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	previewCmd.GroupID = GroupRelease
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().String("bump", version.Patch.String(), "Bump the pending release is labeled with: patch, minor or major")
	previewCmd.Flags().Bool("plain", false, "Plain text output (no colors/icons)")
	previewCmd.Flags().BoolP("watch", "w", false, "Re-render whenever HEAD or a branch moves")
}

type previewOptions struct {
	Dir         string
	ConfigPath  string
	Designation version.Designation
	Plain       bool
	Watch       bool
	Now         func() time.Time
}

func runPreview(cmd *cobra.Command, args []string) error {
	bumpFlag, _ := cmd.Flags().GetString("bump")
	d, err := version.ParseDesignation(bumpFlag)
	if err != nil {
		return clierrors.New(clierrors.Argument, err.Error(), "Use --bump patch, --bump minor or --bump major")
	}

	opts := previewOptions{Dir: workDir(), Designation: d, Now: time.Now}
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Plain, _ = cmd.Flags().GetBool("plain")
	opts.Watch, _ = cmd.Flags().GetBool("watch")

	return preview(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
}

func preview(ctx context.Context, out, errOut io.Writer, opts previewOptions) error {
	p, err := openProject(opts.Dir, opts.ConfigPath, errOut, false)
	if err != nil {
		return err
	}

	spinOut, caps := errOut, progress.DetectTerminalCapabilities()
	if opts.Plain || !output.IsTerminal(errOut) {
		spinOut, caps = io.Discard, progress.TerminalCapabilities{}
	}
	spin := progress.NewSpinner(spinOut, caps)

	render := func() error {
		return renderPreview(ctx, out, spin, p, opts)
	}
	if err := render(); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}

	output.PrintHint(errOut, "Watching for new commits (Ctrl+C to stop)")
	return git.Watch(ctx, p.repo.Dir, git.DefaultWatchDebounce, func() {
		output.PrintSeparator(out, "refreshed "+opts.now().Format("15:04:05"))
		if err := render(); err != nil {
			printError(errOut, err)
		}
	})
}

func renderPreview(ctx context.Context, out io.Writer, spin *progress.Spinner, p *project, opts previewOptions) error {
	current, err := p.cfg.CurrentVersion()
	if err != nil {
		return releaseError(err, p.cfg.Version)
	}
	next := current.Bump(opts.Designation)

	var lines []string
	err = spin.Run("Reading history", func() error {
		var readErr error
		lines, readErr = p.repo.History(ctx)
		return readErr
	})
	if err != nil {
		return clierrors.HistoryUnreadable(err)
	}

	group, err := changelog.Generate(lines, changelog.Options{
		Classifier:     commit.NewClassifier(p.cfg.ClassifierConfig()),
		Links:          commit.LinkResolver{BaseURL: p.cfg.ProjectRepo},
		PendingVersion: next.String(),
		Now:            opts.now,
	})
	if err != nil {
		return clierrors.ChangelogGenerationFailed(err)
	}

	if err := changelog.FormatTerminal(group, out, changelog.FormatOptions{Plain: opts.Plain}); err != nil {
		return fmt.Errorf("formatting preview: %w", err)
	}
	fmt.Fprintf(out, "\n%s\n", changelog.FormatSummary(group))
	return nil
}

func (o previewOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}
