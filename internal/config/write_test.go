package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDefault(dir, "0.3.0", "https://github.com/acme/tool", false)
	require.NoError(t, err)
	assert.Equal(t, ProjectConfigPath(dir), path)

	cfg, err := LoadWithOptions(LoadOptions{Dir: dir, SkipWarnings: true})
	require.NoError(t, err)
	assert.Equal(t, "0.3.0", cfg.Version)
	assert.Equal(t, "https://github.com/acme/tool", cfg.ProjectRepo)
	assert.Equal(t, GetDefaults()["release_prefix"], cfg.ReleasePrefix)

	_, err = WriteDefault(dir, "", "", false)
	assert.ErrorIs(t, err, ErrConfigExists)

	_, err = WriteDefault(dir, "9.9.9", "", true)
	require.NoError(t, err)
	cfg, err = LoadWithOptions(LoadOptions{Dir: dir, SkipWarnings: true})
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", cfg.Version)
}

func TestWriteDefault_RefusesOverLegacy(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, LegacyConfigName, `{"version":"1.0.0"}`)

	_, err := WriteDefault(dir, "", "", false)
	assert.ErrorIs(t, err, ErrConfigExists)
}

func TestRenderConfigTemplate(t *testing.T) {
	out := RenderConfigTemplate("12.0.1", "https://github.com/acme/tool")

	var versionLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "version: ") {
			versionLine = line
		}
	}
	assert.True(t, strings.HasPrefix(versionLine, "version: 12.0.1 "))
	assert.Equal(t, 38, strings.Index(versionLine, "#"), "inline comment stays aligned")
	assert.Contains(t, out, `project_repo: "https://github.com/acme/tool"`)

	assert.Equal(t, GetDefaultConfigTemplate(), RenderConfigTemplate("", ""))
}

func TestDefaultTemplateMatchesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(ProjectConfigPath(dir), []byte(GetDefaultConfigTemplate()), 0o644))

	fromTemplate, err := LoadWithOptions(LoadOptions{Dir: dir, SkipWarnings: true})
	require.NoError(t, err)
	fromDefaults, err := LoadWithOptions(LoadOptions{Dir: t.TempDir(), SkipWarnings: true})
	require.NoError(t, err)

	fromTemplate.Path, fromTemplate.Root = "", ""
	fromDefaults.Path, fromDefaults.Root = "", ""
	assert.Equal(t, fromDefaults, fromTemplate)
}

func TestWriteVersion(t *testing.T) {
	t.Run("yaml keeps comments", func(t *testing.T) {
		dir := t.TempDir()
		path, err := WriteDefault(dir, "1.0.0", "", false)
		require.NoError(t, err)

		require.NoError(t, WriteVersion(path, "1.1.0"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# gitscribe configuration")
		assert.Contains(t, string(data), "version: 1.1.0")

		cfg, err := LoadWithOptions(LoadOptions{ConfigPath: path, SkipWarnings: true})
		require.NoError(t, err)
		assert.Equal(t, "1.1.0", cfg.Version)
	})

	t.Run("legacy json", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, LegacyConfigName, "{\n  \"version\": \"1.0.0\",\n  \"project_repo\": null\n}\n")

		require.NoError(t, WriteVersion(path, "2.0.0"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "2.0.0", gjson.GetBytes(data, "version").String())
		assert.Contains(t, string(data), "\"project_repo\": null")
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, WriteVersion(filepath.Join(t.TempDir(), ".gitscribe.yml"), "1.0.0"))
	})
}
