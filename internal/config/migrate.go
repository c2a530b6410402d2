package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gitscribe/gitscribe/internal/versionsync"
	"gopkg.in/yaml.v3"
)

// MigrationResult describes the outcome of a migration operation
type MigrationResult struct {
	SourcePath string
	TargetPath string
	Success    bool
	DryRun     bool
	Message    string
}

// legacyKeys renames top-level gitscribe.json keys. Keys not listed keep their name.
var legacyKeys = map[string]string{
	"changelog_output_selections": "changelog_outputs",
}

// TranslateLegacy converts a decoded gitscribe.json document to current key
// names and value spellings. Unknown keys pass through unchanged.
func TranslateLegacy(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		if renamed, ok := legacyKeys[key]; ok {
			key = renamed
		}
		switch key {
		case "changelog_outputs":
			value = translateList(value, translateOutput)
		case "version_sync_files":
			value = translateList(value, translateSyncFile)
		case "commands_that_release":
			value = lowerStrings(value)
		}
		if value == nil {
			continue
		}
		out[key] = value
	}
	return out
}

func translateList(value any, fn func(map[string]any) map[string]any) any {
	items, ok := value.([]any)
	if !ok {
		return value
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, fn(m))
			continue
		}
		out = append(out, item)
	}
	return out
}

func translateOutput(m map[string]any) map[string]any {
	out := map[string]any{}
	if v, ok := m["template_option"].(string); ok {
		out["template"] = strings.ToLower(v)
	}
	if v, ok := m["output_filepath"]; ok {
		out["path"] = v
	}
	return out
}

func translateSyncFile(m map[string]any) map[string]any {
	out := map[string]any{}
	if v, ok := m["file_format"].(string); ok {
		if f, err := versionsync.ParseFormat(v); err == nil {
			v = string(f)
		}
		out["format"] = v
	}
	if v, ok := m["file_path"]; ok {
		out["path"] = v
	}
	if v, ok := m["version_key"]; ok {
		out["key"] = v
	}
	return out
}

func lowerStrings(value any) any {
	items, ok := value.([]any)
	if !ok {
		return value
	}
	out := make([]any, len(items))
	for i, item := range items {
		if s, ok := item.(string); ok {
			out[i] = strings.ToLower(s)
			continue
		}
		out[i] = item
	}
	return out
}

// MigrateJSONToYAML converts a legacy gitscribe.json file to .gitscribe.yml.
//
// Migration pipeline:
//  1. Read JSON → 2. Check if YAML exists (skip if so) → 3. Translate keys → 4. Write
//
// Dry-run mode reports the planned action without writing. An existing YAML
// config is never overwritten.
func MigrateJSONToYAML(jsonPath, yamlPath string, dryRun bool) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: jsonPath,
		TargetPath: yamlPath,
		DryRun:     dryRun,
	}

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			result.Message = fmt.Sprintf("No JSON config found at %s", jsonPath)
			return result, nil
		}
		return nil, fmt.Errorf("failed to read JSON config: %w", err)
	}

	var configData map[string]any
	if err := json.Unmarshal(jsonData, &configData); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	if _, err := os.Stat(yamlPath); err == nil {
		result.Message = fmt.Sprintf("YAML config already exists at %s (skipped)", yamlPath)
		return result, nil
	}

	if dryRun {
		result.Success = true
		result.Message = fmt.Sprintf("Would migrate %s → %s", jsonPath, yamlPath)
		return result, nil
	}

	yamlData, err := yaml.Marshal(TranslateLegacy(configData))
	if err != nil {
		return nil, fmt.Errorf("failed to convert to YAML: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(yamlPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# gitscribe configuration\n# Migrated from " + filepath.Base(jsonPath) + "\n\n"
	if err := os.WriteFile(yamlPath, []byte(header+string(yamlData)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write YAML config: %w", err)
	}

	result.Success = true
	result.Message = fmt.Sprintf("Migrated %s → %s", jsonPath, yamlPath)
	return result, nil
}

// MigrateProjectConfig migrates dir/gitscribe.json to dir/.gitscribe.yml.
func MigrateProjectConfig(dir string, dryRun bool) (*MigrationResult, error) {
	return MigrateJSONToYAML(LegacyProjectConfigPath(dir), ProjectConfigPath(dir), dryRun)
}

// RemoveLegacyConfig renames a legacy JSON config to .bak after a successful migration.
func RemoveLegacyConfig(jsonPath string, dryRun bool) error {
	if dryRun {
		return nil
	}

	if _, err := os.Stat(jsonPath); os.IsNotExist(err) {
		return nil // Already removed or never existed
	}

	bakPath := jsonPath + ".bak"
	if err := os.Rename(jsonPath, bakPath); err != nil {
		return fmt.Errorf("failed to backup legacy config: %w", err)
	}
	return nil
}
