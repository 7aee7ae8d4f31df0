package ranking

import (
	"strings"

	"github.com/formbricks/explorer/internal/models"
)

// SnippetMaxRunes bounds the snippet length, excluding the trailing ellipsis.
const SnippetMaxRunes = 200

const ellipsis = "…"

// Snippet returns a short, deterministic excerpt of t for result cards: the last project summary
// when known, otherwise the first user message, otherwise the first message of any role.
// Whitespace runs are collapsed and the text is cut at SnippetMaxRunes runes.
func Snippet(t *models.Transcript) string {
	if summary, ok := models.Known(t.LastProjectSummary); ok {
		return truncateRunes(collapseSpace(summary), SnippetMaxRunes)
	}

	for _, m := range t.Messages {
		if m.Role == models.RoleUser && strings.TrimSpace(m.Content) != "" {
			return truncateRunes(collapseSpace(m.Content), SnippetMaxRunes)
		}
	}

	for _, m := range t.Messages {
		if strings.TrimSpace(m.Content) != "" {
			return truncateRunes(collapseSpace(m.Content), SnippetMaxRunes)
		}
	}

	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return strings.TrimRight(string(runes[:n]), " ") + ellipsis
}
