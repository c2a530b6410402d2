// Package release runs the version bump workflow: it checks the working tree,
// bumps the stored version, propagates it to version files, regenerates the
// changelogs and records everything in a release commit.
package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gitscribe/gitscribe/internal/changelog"
	"github.com/gitscribe/gitscribe/internal/commit"
	"github.com/gitscribe/gitscribe/internal/config"
	"github.com/gitscribe/gitscribe/internal/git"
	"github.com/gitscribe/gitscribe/internal/output"
	"github.com/gitscribe/gitscribe/internal/version"
	"github.com/gitscribe/gitscribe/internal/versionsync"
)

var (
	// ErrNoConfigFile is returned when a bump runs without a config file to store the version in.
	ErrNoConfigFile = errors.New("no config file to store the version in")
	// ErrNoOutputs is returned when no changelog outputs are configured.
	ErrNoOutputs = errors.New("no changelog outputs configured")
)

// DirtyTreeError reports uncommitted changes that block a release.
type DirtyTreeError struct {
	Changes []git.FileChange
}

func (e *DirtyTreeError) Error() string {
	return fmt.Sprintf("working tree has %d uncommitted change(s)", len(e.Changes))
}

// Paths returns the changed paths.
func (e *DirtyTreeError) Paths() []string {
	paths := make([]string, len(e.Changes))
	for i, c := range e.Changes {
		paths[i] = c.Path
	}
	return paths
}

// Repository is the git surface the workflow needs.
type Repository interface {
	History(ctx context.Context) ([]string, error)
	UncommittedChanges() ([]git.FileChange, error)
	CommitAll(message string) (string, error)
	CreateBranch(name string) error
}

// Options configures a release run.
type Options struct {
	Config      *config.Configuration
	Repo        Repository
	Designation version.Designation
	// DryRun prints what would change without touching the tree.
	DryRun bool
	// NoCommit writes files but skips the commit and release branch.
	NoCommit bool
	// Out receives progress output. Defaults to io.Discard.
	Out io.Writer
	// Now stamps the pending release. Defaults to time.Now.
	Now func() time.Time
}

// FileUpdate is one file the release rewrites.
type FileUpdate struct {
	Path   string
	Before string
	After  string
}

// Result describes a completed (or simulated) release.
type Result struct {
	Previous version.Version
	Next     version.Version
	Group    *changelog.Group
	Updates  []FileUpdate
	// Commit is the release commit hash, empty for dry runs and NoCommit.
	Commit string
	// Branch is the release branch created, if any.
	Branch string
}

const totalSteps = 5

// Run executes the release workflow. Every file is computed before any is
// written, so a failure while reading history or rendering leaves the tree
// untouched.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("release: nil config")
	}
	if opts.Repo == nil {
		return nil, errors.New("release: nil repository")
	}
	if cfg.Path == "" {
		return nil, ErrNoConfigFile
	}
	if len(cfg.ChangelogOutputs) == 0 {
		return nil, ErrNoOutputs
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	output.PrintStep(out, 1, totalSteps, "Checking working tree")
	if !opts.DryRun {
		changes, err := opts.Repo.UncommittedChanges()
		if err != nil {
			return nil, fmt.Errorf("checking working tree: %w", err)
		}
		if len(changes) > 0 {
			return nil, &DirtyTreeError{Changes: changes}
		}
	}

	output.PrintStep(out, 2, totalSteps, "Bumping version")
	previous, err := cfg.CurrentVersion()
	if err != nil {
		return nil, fmt.Errorf("stored version: %w", err)
	}
	next := previous.Bump(opts.Designation)
	output.PrintVersionChange(out, previous.String(), next.String())

	output.PrintStep(out, 3, totalSteps, "Generating changelog")
	lines, err := opts.Repo.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	classifier := commit.NewClassifier(cfg.ClassifierConfig())
	stamp := now()
	group, err := changelog.Generate(lines, changelog.Options{
		Classifier:     classifier,
		Links:          commit.LinkResolver{BaseURL: cfg.ProjectRepo},
		PendingVersion: next.String(),
		Now:            func() time.Time { return stamp },
	})
	if err != nil {
		return nil, err
	}
	output.PrintSuccess(out, changelog.FormatSummary(group))

	updates, err := plan(cfg, next, changelog.NewDocument(next.String(), stamp, group))
	if err != nil {
		return nil, err
	}

	res := &Result{Previous: previous, Next: next, Group: group, Updates: updates}

	output.PrintStep(out, 4, totalSteps, "Writing files")
	if opts.DryRun {
		for _, u := range updates {
			output.PrintDiff(out, relPath(cfg.Root, u.Path), u.Before, u.After, 3)
		}
		output.PrintHint(out, "dry run: nothing was written")
		return res, nil
	}
	if err := apply(ctx, cfg, next, updates); err != nil {
		return nil, err
	}
	for _, u := range updates {
		output.PrintSuccess(out, "Updated "+relPath(cfg.Root, u.Path))
	}

	output.PrintStep(out, 5, totalSteps, "Committing release")
	if opts.NoCommit {
		output.PrintHint(out, "--no-commit: changes left unstaged")
		return res, nil
	}
	hash, err := opts.Repo.CommitAll(classifier.ReleaseMessage(next.String()))
	if err != nil {
		return nil, fmt.Errorf("committing release: %w", err)
	}
	res.Commit = hash
	output.PrintSuccess(out, fmt.Sprintf("Committed %s", shortHash(hash)))

	releasing := cfg.ReleasingDesignations()
	if cfg.BranchForRelease && version.Releases(opts.Designation, releasing) {
		branch := version.ReleaseBranchName(next, releasing)
		if err := opts.Repo.CreateBranch(branch); err != nil {
			return res, fmt.Errorf("creating release branch: %w", err)
		}
		res.Branch = branch
		output.PrintSuccess(out, "Created branch "+branch)
		output.PrintHint(out, "To publish your release run: git push origin "+branch)
	} else {
		output.PrintHint(out, "Don't forget to push your changes!")
	}

	return res, nil
}

// plan computes the new contents of the config file, every version file and
// every changelog output.
func plan(cfg *config.Configuration, next version.Version, doc changelog.Document) ([]FileUpdate, error) {
	var updates []FileUpdate

	configFormat := versionsync.YAML
	if config.IsLegacyPath(cfg.Path) {
		configFormat = versionsync.JSON
	}
	u, err := planVersionFile(cfg.Path, configFormat, "version", next.String())
	if err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	updates = append(updates, u)

	for _, f := range cfg.VersionSyncFiles {
		u, err := planVersionFile(cfg.ResolvePath(f.Path), f.Format, f.VersionKey(), next.String())
		if err != nil {
			return nil, fmt.Errorf("version file %s: %w", f.Path, err)
		}
		updates = append(updates, u)
	}

	for _, o := range cfg.ChangelogOutputs {
		path := cfg.ResolvePath(o.Path)
		rendered, err := changelog.RenderString(o.Template, doc)
		if err != nil {
			return nil, err
		}
		before, err := readOptional(path)
		if err != nil {
			return nil, err
		}
		updates = append(updates, FileUpdate{Path: path, Before: before, After: rendered})
	}

	return updates, nil
}

func planVersionFile(path string, format versionsync.Format, key, v string) (FileUpdate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileUpdate{}, err
	}
	updated, err := versionsync.SetVersion(data, format, key, v)
	if err != nil {
		return FileUpdate{}, err
	}
	return FileUpdate{Path: path, Before: string(data), After: string(updated)}, nil
}

// apply persists the version and writes the rendered changelogs. Changelog
// updates are the trailing entries of updates.
func apply(ctx context.Context, cfg *config.Configuration, next version.Version, updates []FileUpdate) error {
	if err := config.WriteVersion(cfg.Path, next.String()); err != nil {
		return fmt.Errorf("storing version: %w", err)
	}
	if err := versionsync.Sync(ctx, cfg.Root, cfg.VersionSyncFiles, next.String()); err != nil {
		return fmt.Errorf("syncing version files: %w", err)
	}

	for _, u := range updates[len(updates)-len(cfg.ChangelogOutputs):] {
		if err := os.MkdirAll(filepath.Dir(u.Path), 0o755); err != nil {
			return fmt.Errorf("creating changelog directory: %w", err)
		}
		if err := os.WriteFile(u.Path, []byte(u.After), 0o644); err != nil {
			return fmt.Errorf("writing changelog %s: %w", u.Path, err)
		}
	}
	return nil
}

func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func relPath(root, path string) string {
	if root == "" {
		return path
	}
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
