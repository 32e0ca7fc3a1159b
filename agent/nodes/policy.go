package orchestratornode

import (
	"strings"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

// Deterministic keyword routing is the supervisor's fast path; the
// classifier oracle is consulted only when it is inconclusive.

var (
	invoiceKeywords = []string{"invoice", "bill", "receipt", "charge", "purchase", "refund", "payment"}
	musicKeywords   = []string{"music", "song", "track", "album", "artist", "band", "genre", "playlist", "recommend"}
	courtesyPhrases = []string{"hi", "hello", "hey", "bye", "goodbye", "thanks", "thank you"}
)

// KeywordRoute returns a route when exactly one category matches.
func KeywordRoute(text string) (contractx.RouteDecision, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = strings.TrimRight(normalized, "!.?")

	for _, phrase := range courtesyPhrases {
		if normalized == phrase {
			return contractx.RouteTerminate, true
		}
	}

	invoice := matchesAny(normalized, invoiceKeywords)
	music := matchesAny(normalized, musicKeywords)
	switch {
	case invoice && !music:
		return contractx.RouteInvoice, true
	case music && !invoice:
		return contractx.RouteMusic, true
	default:
		return "", false
	}
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
