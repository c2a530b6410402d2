package versionsync

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var errNotJSONObject = errors.New("top level is not a JSON object")

// setJSON edits the key in place so indentation and key order survive.
func setJSON(data []byte, key, version string) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, errNotJSONObject
	}
	return sjson.SetBytes(data, escapePath(key), version)
}

// escapePath makes key a literal single-segment sjson path.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
