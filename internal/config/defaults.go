package config

import (
	"fmt"
	"strings"

	"github.com/gitscribe/gitscribe/internal/changelog"
	"github.com/gitscribe/gitscribe/internal/commit"
)

// DefaultVersion is the version a freshly initialized project starts from.
const DefaultVersion = "0.0.1"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# gitscribe configuration
# Values can be overridden with GITSCRIBE_<KEY> environment variables.

version: 0.0.1                        # Current release; rewritten by patch | minor | major
project_repo: ""                      # e.g. https://github.com/org/repo (enables commit links)

# Rendered changelogs
changelog_outputs:
  - template: markdown                # Built-in template: markdown
    path: CHANGELOG.md                # Relative to this file

# Manifests whose version is kept in sync
version_sync_files: []
#  - path: package.json
#    format: json                     # json | cargo-toml | poetry-toml | yaml
#    key: version

# Release branches
branch_for_release: false             # Create release/<version> after releasing bumps
commands_that_release:                # Bumps that create a branch: major | minor | patch
  - major

# Commit conventions
release_prefix: "` + commit.DefaultReleasePrefix + `"
emoji_shorthand:                      # Expanded in messages before classification
  ":sparkles:": "✨"
  ":bug:": "🐛"

history_source: git                   # git (CLI) | go-git (no git binary needed)
`
}

// RenderConfigTemplate returns the default template with version and repo filled in.
func RenderConfigTemplate(version, repo string) string {
	tmpl := GetDefaultConfigTemplate()
	if version != "" {
		tmpl = setTemplateValue(tmpl, "version", version)
	}
	if repo != "" {
		tmpl = setTemplateValue(tmpl, "project_repo", fmt.Sprintf("%q", repo))
	}
	return tmpl
}

// setTemplateValue rewrites the top-level key line, keeping its inline comment aligned.
func setTemplateValue(tmpl, key, value string) string {
	const column = 38
	lines := strings.Split(tmpl, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, key+": ") {
			continue
		}
		entry := key + ": " + value
		if j := strings.Index(line, " #"); j >= 0 {
			comment := strings.TrimLeft(line[j:], " ")
			if len(entry) < column {
				entry += strings.Repeat(" ", column-len(entry))
			} else {
				entry += " "
			}
			entry += comment
		}
		lines[i] = entry
		break
	}
	return strings.Join(lines, "\n")
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"version":      DefaultVersion,
		"project_repo": "",
		"changelog_outputs": []interface{}{
			map[string]interface{}{
				"template": changelog.TemplateMarkdown,
				"path":     "CHANGELOG.md",
			},
		},
		"version_sync_files":    []interface{}{},
		"branch_for_release":    false,
		"commands_that_release": []string{"major"},
		"release_prefix":        commit.DefaultReleasePrefix,
		"emoji_shorthand": map[string]interface{}{
			":sparkles:": "✨",
			":bug:":      "🐛",
		},
		// history_source: "git" shells out to the git CLI; "go-git" walks the
		// object database in-process and needs no git binary.
		"history_source": HistorySourceGit,
	}
}
