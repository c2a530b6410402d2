package commit

import (
	"fmt"
	"strings"
)

// LinkResolver derives commit URLs from the project's repository URL.
// The zero value resolves nothing.
type LinkResolver struct {
	BaseURL string
}

// Resolve returns the URL of commit id, or false when no base URL is
// configured or the hosting provider is not recognized.
func (l LinkResolver) Resolve(id string) (string, bool) {
	if l.BaseURL == "" || id == "" {
		return "", false
	}

	base := strings.TrimRight(l.BaseURL, "/")
	switch {
	case strings.Contains(base, "github"):
		return fmt.Sprintf("%s/commit/%s", base, id), true
	case strings.Contains(base, "stash/projects"):
		// Bitbucket Server
		return fmt.Sprintf("%s/commits/%s", base, id), true
	case strings.Contains(base, "gitlab"):
		return fmt.Sprintf("%s/-/commit/%s", base, id), true
	default:
		return "", false
	}
}
