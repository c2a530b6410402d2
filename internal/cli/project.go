package cli

import (
	"errors"
	"io"
	"os/exec"

	"github.com/gitscribe/gitscribe/internal/config"
	clierrors "github.com/gitscribe/gitscribe/internal/errors"
	"github.com/gitscribe/gitscribe/internal/git"
)

// project is the loaded config and repository a command works on.
type project struct {
	cfg  *config.Configuration
	repo git.Repo
}

// loadConfigFrom loads the config for dir, or configPath when set.
func loadConfigFrom(dir, configPath string, warnings io.Writer) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigPath:    configPath,
		Dir:           dir,
		WarningWriter: warnings,
	})
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, clierrors.ConfigFileNotFound(configPath)
		}
		path := configPath
		if path == "" {
			path = dir
		}
		return nil, clierrors.ConfigParseError(path, err)
	}
	return cfg, nil
}

// openProject loads the config and checks the repository prerequisites.
// requireConfig rejects runs that only have built-in defaults.
func openProject(dir, configPath string, warnings io.Writer, requireConfig bool) (*project, error) {
	cfg, err := loadConfigFrom(dir, configPath, warnings)
	if err != nil {
		return nil, err
	}
	if requireConfig && cfg.Path == "" {
		return nil, clierrors.ConfigFileNotFound("")
	}

	root, err := git.RepositoryRoot(dir)
	if err != nil {
		if errors.Is(err, git.ErrNotRepository) {
			return nil, clierrors.NotGitRepository(dir)
		}
		return nil, clierrors.Wrap(err, clierrors.Runtime, "failed to open repository")
	}

	if cfg.HistorySource == config.HistorySourceGit {
		if _, err := exec.LookPath("git"); err != nil {
			return nil, clierrors.GitNotFound()
		}
	}

	return &project{cfg: cfg, repo: git.Repo{Dir: root, Source: cfg.HistorySource}}, nil
}
