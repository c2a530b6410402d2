// Package git provides the repository operations gitscribe needs around a release:
// reading history, checking for uncommitted changes, committing the release and
// cutting a release branch. It uses the go-git library for repository access and
// falls back to the git CLI only for the default history feed.
package git

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNotRepository is returned when a directory is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository")

// Fallback identity for commits when neither the repository nor the user
// configures one.
const (
	fallbackAuthorName  = "gitscribe"
	fallbackAuthorEmail = "gitscribe@localhost"
)

// timeNow stamps commits. Tests replace it.
var timeNow = time.Now

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the git repository containing path.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// hasCommits reports whether HEAD points at a commit. A freshly initialized
// repository has an unborn branch and no history.
func hasCommits(repo *git.Repository) (bool, error) {
	_, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("getting HEAD reference: %w", err)
	}
	return true, nil
}

// RepositoryRoot returns the absolute path to the root of the repository containing dir.
func RepositoryRoot(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// CreateBranch creates a new branch at HEAD and checks it out.
// Returns an error if the branch already exists or if not in a git repository.
func CreateBranch(dir, name string) error {
	repo, err := openRepo(dir)
	if err != nil {
		return err
	}

	if err := checkBranchExists(repo, name); err != nil {
		return err
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	// Keep: true preserves untracked files and directories.
	// Without Keep, go-git deletes untracked content during checkout.
	branchRef := plumbing.NewBranchReferenceName(name)
	err = worktree.Checkout(&git.CheckoutOptions{
		Hash:   head.Hash(),
		Branch: branchRef,
		Create: true,
		Keep:   true,
	})
	if err != nil {
		return fmt.Errorf("creating branch '%s': %w", name, err)
	}

	logDebug("[git] CreateBranch: created and checked out %s", name)
	return nil
}

// checkBranchExists returns an error if the branch already exists.
func checkBranchExists(repo *git.Repository, name string) error {
	branchRef := plumbing.NewBranchReferenceName(name)
	_, err := repo.Reference(branchRef, false)
	if err == nil {
		return fmt.Errorf("branch '%s' already exists", name)
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("checking branch existence: %w", err)
	}
	return nil
}

// CommitAll stages every change in the worktree, including untracked and
// deleted files, and commits it with message. It returns the new commit hash.
func CommitAll(dir, message string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("staging changes: %w", err)
	}

	signature := commitSignature(repo)
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author:    signature,
		Committer: signature,
	})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}

	logDebug("[git] CommitAll: %s %q", hash, message)
	return hash.String(), nil
}

// commitSignature resolves user.name and user.email the way git does:
// repository config first, then the global config.
func commitSignature(repo *git.Repository) *object.Signature {
	sig := &object.Signature{When: timeNow()}

	if cfg, err := repo.Config(); err == nil {
		sig.Name, sig.Email = cfg.User.Name, cfg.User.Email
	}
	if sig.Name == "" || sig.Email == "" {
		if global, err := config.LoadConfig(config.GlobalScope); err == nil {
			if sig.Name == "" {
				sig.Name = global.User.Name
			}
			if sig.Email == "" {
				sig.Email = global.User.Email
			}
		}
	}

	if sig.Name == "" {
		sig.Name = fallbackAuthorName
	}
	if sig.Email == "" {
		sig.Email = fallbackAuthorEmail
	}
	return sig
}
