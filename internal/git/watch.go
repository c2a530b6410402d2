package git

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce collapses the burst of ref writes a single git
// command produces into one notification.
const DefaultWatchDebounce = 300 * time.Millisecond

// Watch calls onChange whenever HEAD or a local branch of the repository
// containing dir moves, until ctx is done. Calls never overlap.
func Watch(ctx context.Context, dir string, debounce time.Duration, onChange func()) error {
	repo, err := openRepo(dir)
	if err != nil {
		return err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	gitDir := filepath.Join(worktree.Filesystem.Root(), ".git")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(gitDir); err != nil {
		return fmt.Errorf("watching %s: %w", gitDir, err)
	}
	// fsnotify is not recursive; branches such as release/1.X.X live in
	// subdirectories of refs/heads.
	if err := addDirs(watcher, filepath.Join(gitDir, "refs", "heads")); err != nil {
		return err
	}
	logDebug("[git] watching %s for ref updates", gitDir)

	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if event.Has(fsnotify.Create) && isBranchDir(event.Name) {
				// The directory may be gone again by now.
				if err := addDirs(watcher, event.Name); err != nil {
					logDebug("[git] %v", err)
				}
			}
			if isRefEvent(event) {
				logDebug("[git] ref event %s", event)
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		case <-timer.C:
			onChange()
		}
	}
}

// addDirs watches root and every directory below it.
func addDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func isBranchDir(path string) bool {
	if !strings.Contains(filepath.ToSlash(path), "/refs/heads/") {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isRefEvent filters out lock files and the index, which change without
// history moving.
func isRefEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasSuffix(base, ".lock") || base == "index" {
		return false
	}
	return base == "HEAD" || base == "ORIG_HEAD" || base == "packed-refs" ||
		strings.Contains(filepath.ToSlash(event.Name), "/refs/heads/")
}
