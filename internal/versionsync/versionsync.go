// Package versionsync writes a release version into manifest files kept
// alongside the project, such as package.json or Cargo.toml.
package versionsync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Format identifies how a manifest file is encoded and where its version lives.
type Format string

const (
	// JSON stores the version under a top-level key.
	JSON Format = "json"
	// CargoTOML stores the version under [package].
	CargoTOML Format = "cargo-toml"
	// PoetryTOML stores the version under [tool.poetry].
	PoetryTOML Format = "poetry-toml"
	// YAML stores the version under a top-level key.
	YAML Format = "yaml"
)

// DefaultKey is the key written when a File leaves Key empty.
const DefaultKey = "version"

// legacyFormats maps the names used by gitscribe.json to Format values.
var legacyFormats = map[string]Format{
	"Json":       JSON,
	"CargoToml":  CargoTOML,
	"PoetryToml": PoetryTOML,
	"Yaml":       YAML,
}

// Formats returns every supported format.
func Formats() []Format {
	return []Format{JSON, CargoTOML, PoetryTOML, YAML}
}

// ParseFormat parses a format name, accepting the legacy spellings too.
func ParseFormat(s string) (Format, error) {
	if f, ok := legacyFormats[s]; ok {
		return f, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown version file format %q (valid: %s)", s, formatList())
}

func formatList() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// File is one manifest whose version is kept in sync.
type File struct {
	Path   string `koanf:"path" yaml:"path" json:"path"`
	Format Format `koanf:"format" yaml:"format" json:"format"`
	Key    string `koanf:"key" yaml:"key,omitempty" json:"key,omitempty"`
}

// VersionKey returns the key holding the version, defaulting to DefaultKey.
func (f File) VersionKey() string {
	if f.Key == "" {
		return DefaultKey
	}
	return f.Key
}

// SetVersion returns data with the version key of the given format set to
// version. Untouched keys are kept as they were.
func SetVersion(data []byte, format Format, key, version string) ([]byte, error) {
	if key == "" {
		key = DefaultKey
	}
	switch format {
	case JSON:
		return setJSON(data, key, version)
	case CargoTOML:
		return setTOML(data, []string{"package"}, key, version)
	case PoetryTOML:
		return setTOML(data, []string{"tool", "poetry"}, key, version)
	case YAML:
		return setYAML(data, key, version)
	default:
		return nil, fmt.Errorf("unknown version file format %q (valid: %s)", format, formatList())
	}
}

// WriteFile rewrites the file at path with its version set. Relative paths
// are resolved against root.
func WriteFile(root string, f File, version string) error {
	path := resolve(root, f.Path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("version file %s: %w", f.Path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading version file %s: %w", f.Path, err)
	}

	updated, err := SetVersion(data, f.Format, f.VersionKey(), version)
	if err != nil {
		return fmt.Errorf("updating version file %s: %w", f.Path, err)
	}

	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing version file %s: %w", f.Path, err)
	}
	return nil
}

// ErrDuplicateFile is returned by Sync when two entries resolve to one path.
var ErrDuplicateFile = errors.New("version file listed twice")

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// Sync writes version into every file concurrently. Failures are joined in
// the order the files were given; files that succeeded stay updated.
// Nothing is written when two entries resolve to the same path.
func Sync(ctx context.Context, root string, files []File, version string) error {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		path := filepath.Clean(resolve(root, f.Path))
		if seen[path] {
			return fmt.Errorf("%w: %s", ErrDuplicateFile, f.Path)
		}
		seen[path] = true
	}

	errs := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = WriteFile(root, f, version)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
