package git

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
)

// ChangeKind classifies an uncommitted path the way git status --porcelain does.
type ChangeKind string

const (
	Modified           ChangeKind = "modified"
	Added              ChangeKind = "added"
	Deleted            ChangeKind = "deleted"
	Renamed            ChangeKind = "renamed"
	Copied             ChangeKind = "copied"
	Untracked          ChangeKind = "untracked"
	UpdatedButUnmerged ChangeKind = "unmerged"
)

// FileChange is one path with uncommitted changes.
type FileChange struct {
	Path string
	Kind ChangeKind
}

func (c FileChange) String() string {
	return fmt.Sprintf("%s (%s)", c.Path, c.Kind)
}

// UncommittedChanges lists every path in dir's worktree that differs from
// HEAD or the index, sorted by path. Ignored files are not reported.
func UncommittedChanges(dir string) ([]FileChange, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return nil, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}

	var changes []FileChange
	for path, fs := range status {
		kind, ok := changeKind(fs)
		if !ok {
			continue
		}
		changes = append(changes, FileChange{Path: path, Kind: kind})
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})

	logDebug("[git] UncommittedChanges: %d paths", len(changes))
	return changes, nil
}

// changeKind prefers the worktree state and falls back to the staged one.
func changeKind(fs *git.FileStatus) (ChangeKind, bool) {
	code := fs.Worktree
	if code == git.Unmodified {
		code = fs.Staging
	}

	switch code {
	case git.Modified:
		return Modified, true
	case git.Added:
		return Added, true
	case git.Deleted:
		return Deleted, true
	case git.Renamed:
		return Renamed, true
	case git.Copied:
		return Copied, true
	case git.Untracked:
		return Untracked, true
	case git.UpdatedButUnmerged:
		return UpdatedButUnmerged, true
	default:
		return "", false
	}
}
