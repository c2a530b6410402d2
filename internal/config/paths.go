package config

import "path/filepath"

// ProjectConfigNames are the YAML config file names, in lookup order.
var ProjectConfigNames = []string{".gitscribe.yml", ".gitscribe.yaml"}

// LegacyConfigName is the JSON config file written by earlier releases.
const LegacyConfigName = "gitscribe.json"

// ProjectConfigPath returns the path of the preferred project config in dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigNames[0])
}

// FindProjectConfig returns the first YAML project config present in dir,
// or "" when there is none.
func FindProjectConfig(dir string) string {
	for _, name := range ProjectConfigNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// LegacyProjectConfigPath returns the path of the legacy JSON config in dir.
func LegacyProjectConfigPath(dir string) string {
	return filepath.Join(dir, LegacyConfigName)
}

// IsLegacyPath reports whether path names a JSON config.
func IsLegacyPath(path string) bool {
	return filepath.Ext(path) == ".json"
}
