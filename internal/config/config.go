// Package config provides hierarchical configuration management for gitscribe using koanf.
// Configuration is loaded with priority: environment variables (GITSCRIBE_*) > project config
// (.gitscribe.yml) > defaults. The legacy gitscribe.json format is still read, with a
// deprecation warning, and its keys are translated to the current names.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gitscribe/gitscribe/internal/commit"
	"github.com/gitscribe/gitscribe/internal/version"
	"github.com/gitscribe/gitscribe/internal/versionsync"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read as configuration.
const EnvPrefix = "GITSCRIBE_"

// History sources.
const (
	HistorySourceGit   = "git"
	HistorySourceGoGit = "go-git"
)

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// OutputOption selects one rendered changelog and where it is written.
type OutputOption struct {
	Template string `koanf:"template" yaml:"template"`
	Path     string `koanf:"path" yaml:"path"`
}

// Configuration represents the gitscribe configuration
type Configuration struct {
	// Version is the currently released version, rewritten on every bump.
	Version string `koanf:"version"`
	// ProjectRepo is the repository URL used to link commits, e.g. https://github.com/org/repo.
	ProjectRepo string `koanf:"project_repo"`

	ChangelogOutputs []OutputOption    `koanf:"changelog_outputs"`
	VersionSyncFiles []versionsync.File `koanf:"version_sync_files"`

	// BranchForRelease creates release/<version> after bumps listed in CommandsThatRelease.
	BranchForRelease    bool     `koanf:"branch_for_release"`
	CommandsThatRelease []string `koanf:"commands_that_release"`

	// ReleasePrefix marks version bump commits, both when writing and when reading history.
	ReleasePrefix  string            `koanf:"release_prefix"`
	EmojiShorthand map[string]string `koanf:"emoji_shorthand"`

	// HistorySource selects the history backend: "git" (CLI) or "go-git".
	HistorySource string `koanf:"history_source"`

	// Path is the file the configuration was loaded from, empty when none was found.
	Path string `koanf:"-"`
	// Root is the directory relative paths are resolved against.
	Root string `koanf:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath loads this file instead of searching Dir. It must exist.
	ConfigPath string
	// Dir is searched for a project config (default: current directory).
	Dir string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration for the project in dir.
// Priority: Environment variables > Project config > Defaults
func Load(dir string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{Dir: dir})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	path, err := resolveConfigPath(opts, warningWriter)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadProjectConfig(k, path, warningWriter, opts.SkipWarnings); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	cfg, err := finalizeConfig(k, path, rootDir(opts.Dir, path))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// resolveConfigPath picks the file to load. An explicit path must exist;
// otherwise the project directory is searched and nothing found is not an error.
func resolveConfigPath(opts LoadOptions, warningWriter io.Writer) (string, error) {
	if opts.ConfigPath != "" {
		if !fileExists(opts.ConfigPath) {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, opts.ConfigPath)
		}
		return opts.ConfigPath, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	yamlPath := FindProjectConfig(dir)
	legacyPath := LegacyProjectConfigPath(dir)
	legacyExists := fileExists(legacyPath)

	if yamlPath != "" {
		warnLegacyExists(warningWriter, legacyPath, yamlPath, legacyExists, opts.SkipWarnings)
		return yamlPath, nil
	}
	if legacyExists {
		return legacyPath, nil
	}
	return "", nil
}

// loadProjectConfig loads a YAML or legacy JSON project config by extension.
func loadProjectConfig(k *koanf.Koanf, path string, warningWriter io.Writer, skipWarnings bool) error {
	if IsLegacyPath(path) {
		if err := loadLegacyJSONConfig(k, path, warningWriter, skipWarnings); err != nil {
			return fmt.Errorf("loading legacy project JSON config: %w", err)
		}
		return nil
	}
	if err := loadYAMLConfig(k, path); err != nil {
		return fmt.Errorf("loading project YAML config: %w", err)
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// loadLegacyJSONConfig loads gitscribe.json, renames its keys and warns about migration
func loadLegacyJSONConfig(k *koanf.Koanf, path string, warningWriter io.Writer, skipWarnings bool) error {
	legacy := koanf.New(".")
	if err := legacy.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy config %s: %w", path, err)
	}
	for key, value := range TranslateLegacy(legacy.Raw()) {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("applying legacy key %s: %w", key, err)
		}
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Run 'gitscribe init --migrate' to migrate to YAML format.\n\n")
	}
	return nil
}

// warnLegacyExists warns if legacy JSON exists alongside new YAML
func warnLegacyExists(warningWriter io.Writer, legacyPath, yamlPath string, legacyExists, skipWarnings bool) {
	if legacyExists && !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		fmt.Fprintf(warningWriter, "  Remove it once you no longer need it.\n\n")
	}
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, normalizes and validates
func finalizeConfig(k *koanf.Koanf, path, root string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Path = path
	cfg.Root = root

	source := path
	if source == "" {
		source = "config"
	}
	if err := normalize(&cfg, source); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := ValidateConfigValues(&cfg, source); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// normalize canonicalizes enum-like values so legacy spellings validate.
func normalize(cfg *Configuration, source string) error {
	cfg.Version = strings.TrimSpace(cfg.Version)
	cfg.HistorySource = strings.ToLower(strings.TrimSpace(cfg.HistorySource))
	for i := range cfg.ChangelogOutputs {
		cfg.ChangelogOutputs[i].Template = strings.ToLower(strings.TrimSpace(cfg.ChangelogOutputs[i].Template))
	}
	for i := range cfg.CommandsThatRelease {
		cfg.CommandsThatRelease[i] = strings.ToLower(strings.TrimSpace(cfg.CommandsThatRelease[i]))
	}
	for i, f := range cfg.VersionSyncFiles {
		format, err := versionsync.ParseFormat(string(f.Format))
		if err != nil {
			return &ValidationError{
				FilePath: source,
				Field:    fmt.Sprintf("version_sync_files[%d].format", i),
				Message:  err.Error(),
			}
		}
		cfg.VersionSyncFiles[i].Format = format
	}
	return nil
}

// rootDir returns the directory of the loaded config, or the search dir.
func rootDir(dir, path string) string {
	if path != "" {
		return filepath.Dir(path)
	}
	if dir == "" {
		return "."
	}
	return dir
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: GITSCRIBE_PROJECT_REPO -> project_repo
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// ResolvePath resolves p relative to the configuration root.
func (c *Configuration) ResolvePath(p string) string {
	if filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}

// ClassifierConfig returns the commit classification markers.
func (c *Configuration) ClassifierConfig() commit.ClassifierConfig {
	shorthand := make(map[string]string, len(c.EmojiShorthand))
	for code, glyph := range c.EmojiShorthand {
		shorthand[code] = glyph
	}
	return commit.ClassifierConfig{
		ReleasePrefix: c.ReleasePrefix,
		Shorthand:     shorthand,
	}
}

// CurrentVersion parses the stored version.
func (c *Configuration) CurrentVersion() (version.Version, error) {
	return version.Parse(c.Version)
}

// ReleasingDesignations returns the bumps that cut a release branch.
// Nil when branch_for_release is off.
func (c *Configuration) ReleasingDesignations() []version.Designation {
	if !c.BranchForRelease {
		return nil
	}
	out := make([]version.Designation, 0, len(c.CommandsThatRelease))
	for _, name := range c.CommandsThatRelease {
		if d, err := version.ParseDesignation(name); err == nil {
			out = append(out, d)
		}
	}
	return out
}
