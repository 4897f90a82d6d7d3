package mirror

import (
	"fmt"
	"strings"

	"github.com/ashureev/mirror/internal/domain"
)

const digestTemplate = `Internal State Summary (session-only):
- Recurrent themes: %s
- Detect tension patterns and identity conflict if present.`

// BuildDigest renders the session-only summary of recent user turns.
// It is recomputed for every request and never stored.
func BuildDigest(conv domain.Conversation) string {
	return fmt.Sprintf(digestTemplate, digestTheme(conv))
}

// digestTheme joins the last few user messages and caps the result in characters.
func digestTheme(conv domain.Conversation) string {
	recent := conv.UserMessages(domain.DigestUserMessages)
	contents := make([]string, 0, len(recent))
	for _, m := range recent {
		contents = append(contents, m.Content)
	}
	return truncateRunes(strings.Join(contents, " "), domain.DigestThemeCharLimit)
}

func truncateRunes(s string, limit int) string {
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
