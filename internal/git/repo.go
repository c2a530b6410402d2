package git

import "context"

// Repo binds the package operations to one working directory and history source.
type Repo struct {
	Dir    string
	Source string
}

// History returns the repository's history feed.
func (r Repo) History(ctx context.Context) ([]string, error) {
	return ReadHistory(ctx, r.Dir, r.Source)
}

// UncommittedChanges lists paths with uncommitted changes.
func (r Repo) UncommittedChanges() ([]FileChange, error) {
	return UncommittedChanges(r.Dir)
}

// CommitAll stages everything and commits it.
func (r Repo) CommitAll(message string) (string, error) {
	return CommitAll(r.Dir, message)
}

// CreateBranch creates and checks out a branch at HEAD.
func (r Repo) CreateBranch(name string) error {
	return CreateBranch(r.Dir, name)
}
