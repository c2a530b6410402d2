package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gitscribe/gitscribe/internal/versionsync"
)

// ErrConfigExists is returned by WriteDefault when a config is already present.
var ErrConfigExists = errors.New("config file already exists")

// WriteVersion stores v as the version of the config file at path, leaving
// every other key and comment in place.
func WriteVersion(path, v string) error {
	format := versionsync.YAML
	if IsLegacyPath(path) {
		format = versionsync.JSON
	}
	return versionsync.WriteFile("", versionsync.File{Path: path, Format: format, Key: "version"}, v)
}

// WriteDefault writes the commented default config for a new project to
// dir/.gitscribe.yml and returns its path. Existing YAML or legacy configs
// are kept unless force is set.
func WriteDefault(dir, initialVersion, repo string, force bool) (string, error) {
	path := ProjectConfigPath(dir)
	if !force {
		if existing := FindProjectConfig(dir); existing != "" {
			return existing, fmt.Errorf("%w: %s", ErrConfigExists, existing)
		}
		if legacy := LegacyProjectConfigPath(dir); fileExists(legacy) {
			return legacy, fmt.Errorf("%w: %s", ErrConfigExists, legacy)
		}
	}

	content := RenderConfigTemplate(initialVersion, repo)
	if err := ValidateYAMLSyntaxFromBytes([]byte(content), path); err != nil {
		return "", fmt.Errorf("rendering default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}
