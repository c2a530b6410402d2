package changelog

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplateMarkdown is the name of the built-in Markdown changelog template.
const TemplateMarkdown = "markdown"

// Templates returns the names of the embedded changelog templates.
func Templates() []string {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.SplitN(e.Name(), ".", 2)[0])
	}
	sort.Strings(names)
	return names
}

// IsTemplate returns true if name is an embedded template.
func IsTemplate(name string) bool {
	for _, t := range Templates() {
		if t == name {
			return true
		}
	}
	return false
}

// loadTemplate parses the embedded template called name.
func loadTemplate(name string) (*template.Template, error) {
	matches, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("reading embedded templates: %w", err)
	}
	for _, e := range matches {
		if strings.SplitN(e.Name(), ".", 2)[0] != name {
			continue
		}
		content, err := templateFS.ReadFile("templates/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", name, err)
		}
		tmpl, err := template.New(name).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		return tmpl, nil
	}
	return nil, fmt.Errorf("unknown changelog template %q (available: %s)", name, strings.Join(Templates(), ", "))
}
