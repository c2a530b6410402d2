package commit

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultReleasePrefix is the message prefix gitscribe writes on its own
// version bump commits.
const DefaultReleasePrefix = "chore: 📝 update changelog and bump version to "

const (
	featureMarker = "feat:"
	fixMarker     = "fix:"
)

// versionSuffix matches the MAJOR.MINOR.PATCH that ends a release marker message.
var versionSuffix = regexp.MustCompile(`(\d+\.\d+\.\d+)$`)

// DefaultShorthand returns the gitmoji shortcodes expanded out of the box.
func DefaultShorthand() map[string]string {
	return map[string]string{
		":sparkles:": "✨",
		":bug:":      "🐛",
	}
}

// ClassifierConfig holds the process-wide markers the classifier matches on.
type ClassifierConfig struct {
	// ReleasePrefix marks version bump commits. Empty means DefaultReleasePrefix.
	ReleasePrefix string
	// Shorthand maps shortcodes (e.g. ":bug:") to the glyph replacing them.
	Shorthand map[string]string
}

// DefaultClassifierConfig returns the markers gitscribe uses when unconfigured.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		ReleasePrefix: DefaultReleasePrefix,
		Shorthand:     DefaultShorthand(),
	}
}

// Classifier normalizes commit messages and assigns them a Category.
type Classifier struct {
	releasePrefix string
	// releaseMarker is releasePrefix without trailing blanks, so a marker
	// whose version was lost to trimming still reads as a release.
	releaseMarker string
	replacer      *strings.Replacer
}

// NewClassifier builds a classifier from cfg.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	prefix := cfg.ReleasePrefix
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultReleasePrefix
	}
	return &Classifier{
		releasePrefix: prefix,
		releaseMarker: strings.TrimRight(prefix, " \t"),
		replacer:      newShorthandReplacer(cfg.Shorthand),
	}
}

// newShorthandReplacer orders codes longest first so that a code which is a
// prefix of another never shadows it; ties are broken lexically.
func newShorthandReplacer(table map[string]string) *strings.Replacer {
	codes := make([]string, 0, len(table))
	for code := range table {
		if code != "" {
			codes = append(codes, code)
		}
	}
	sort.Slice(codes, func(i, j int) bool {
		if len(codes[i]) != len(codes[j]) {
			return len(codes[i]) > len(codes[j])
		}
		return codes[i] < codes[j]
	})

	pairs := make([]string, 0, len(codes)*2)
	for _, code := range codes {
		pairs = append(pairs, code, table[code])
	}
	return strings.NewReplacer(pairs...)
}

// Normalize expands shorthand codes into glyphs and trims surrounding space.
func (c *Classifier) Normalize(message string) string {
	return strings.TrimSpace(c.replacer.Replace(message))
}

// Classify returns the category of an already normalized message.
// The release prefix wins over the feature and fix markers.
func (c *Classifier) Classify(message string) Category {
	switch {
	case strings.Contains(message, c.releaseMarker):
		return Release
	case strings.Contains(message, featureMarker):
		return Feature
	case strings.Contains(message, fixMarker):
		return Fix
	default:
		return Unclassified
	}
}

// ReleasePrefix returns the prefix identifying release marker commits.
func (c *Classifier) ReleasePrefix() string {
	return c.releasePrefix
}

// ReleaseMessage returns the commit message used when releasing version.
func (c *Classifier) ReleaseMessage(version string) string {
	return c.releasePrefix + version
}

// ReleaseVersion extracts the trailing MAJOR.MINOR.PATCH from a release marker.
func ReleaseVersion(r Record) (string, error) {
	m := versionSuffix.FindStringSubmatch(strings.TrimSpace(r.Message))
	if m == nil {
		return "", &VersionError{ID: r.ID, Message: r.Message}
	}
	return m[1], nil
}
