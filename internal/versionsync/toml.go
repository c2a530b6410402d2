package versionsync

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// setTOML sets key inside the table at tablePath. The document is decoded and
// re-encoded, so comments are not kept.
func setTOML(data []byte, tablePath []string, key, version string) ([]byte, error) {
	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	table := doc
	for _, name := range tablePath {
		next, ok := table[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("table [%s] not found", strings.Join(tablePath, "."))
		}
		table = next
	}
	table[key] = version

	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding TOML: %w", err)
	}
	return out, nil
}
