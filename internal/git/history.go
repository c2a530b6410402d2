package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gitscribe/gitscribe/internal/commit"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// History sources accepted by ReadHistory.
const (
	SourceCLI   = "git"
	SourceGoGit = "go-git"
)

// ReadHistory returns the history feed of the repository containing dir:
// one commit.LogFormat line per commit reachable from HEAD, newest first.
// A repository without commits has an empty history.
//
// source selects the backend. SourceCLI runs git log; SourceGoGit walks the
// object database in-process and produces identical lines.
func ReadHistory(ctx context.Context, dir, source string) ([]string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return nil, err
	}
	ok, err := hasCommits(repo)
	if err != nil {
		return nil, err
	}
	if !ok {
		logDebug("[git] ReadHistory: no commits yet")
		return nil, nil
	}

	switch source {
	case SourceGoGit:
		return readHistoryGoGit(ctx, repo)
	case SourceCLI, "":
		return readHistoryCLI(ctx, dir)
	default:
		return nil, fmt.Errorf("unknown history source %q", source)
	}
}

// readHistoryCLI runs git log with the tagged pretty format.
func readHistoryCLI(ctx context.Context, dir string) ([]string, error) {
	args := []string{"log", "--pretty=format:" + commit.LogFormat, "--date=iso-strict"}
	if dir != "" {
		args = append([]string{"-C", dir}, args...)
	}
	logDebug("[git] running git %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, "git", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("git executable not found (set history_source: go-git to read history without it): %w", err)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("git log: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("git log: %w", err)
	}

	return splitLines(string(out)), nil
}

// readHistoryGoGit walks HEAD's ancestry by committer time.
func readHistoryGoGit(ctx context.Context, repo *git.Repository) ([]string, error) {
	iter, err := repo.Log(&git.LogOptions{Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	var lines []string
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		lines = append(lines, commit.FormatLine(c.Hash.String(), c.Author.Name, Subject(c.Message), c.Committer.When))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking log: %w", err)
	}

	logDebug("[git] ReadHistory: %d commits via go-git", len(lines))
	return lines, nil
}

// Subject returns what git prints for %s: the first paragraph of message
// with its line breaks folded into spaces.
func Subject(message string) string {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	paragraph, _, _ := strings.Cut(strings.TrimLeft(message, "\n"), "\n\n")

	var parts []string
	for _, line := range strings.Split(paragraph, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
