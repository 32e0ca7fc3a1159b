package responder

import (
	"context"
	"regexp"
	"strings"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

// Deterministic oracle implementations. They back tests and no-LLM runs and
// decouple the state machine's correctness from model behavior.

var (
	emailPattern = regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.[\w.-]+\b`)
	phonePattern = regexp.MustCompile(`\+\d{7,15}\b`)
	digitPattern = regexp.MustCompile(`\b\d{1,10}\b`)
)

// HeuristicExtractor pulls the first identifier-shaped token out of the
// latest user message.
type HeuristicExtractor struct{}

var _ contractx.IdentifierExtractor = HeuristicExtractor{}

func (HeuristicExtractor) Extract(_ context.Context, messages []contractx.Message) (string, error) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != contractx.RoleUser {
			continue
		}
		text := messages[i].Content
		if m := emailPattern.FindString(text); m != "" {
			return m, nil
		}
		if m := phonePattern.FindString(text); m != "" {
			return m, nil
		}
		if m := digitPattern.FindString(text); m != "" {
			return m, nil
		}
		return "", nil
	}
	return "", nil
}

// HeuristicRouter classifies by keyword. Ambiguous messages (both invoice
// and music keywords, or none) fall to the generic route.
type HeuristicRouter struct{}

var _ contractx.RouteClassifier = HeuristicRouter{}

var (
	invoiceKeywords = []string{"invoice", "bill", "receipt", "charge", "purchase", "refund", "payment"}
	musicKeywords   = []string{"music", "song", "track", "album", "artist", "band", "genre", "playlist", "recommend"}
	farewellPhrases = []string{"hi", "hello", "hey", "bye", "goodbye", "thanks", "thank you"}
)

func (HeuristicRouter) Classify(_ context.Context, view contractx.ResponderView) (contractx.RouteDecision, error) {
	text := strings.ToLower(strings.TrimSpace(view.LatestUserMessage()))

	for _, phrase := range farewellPhrases {
		if text == phrase || text == phrase+"!" {
			return contractx.RouteTerminate, nil
		}
	}

	invoice := containsAny(text, invoiceKeywords)
	music := containsAny(text, musicKeywords)
	switch {
	case invoice && !music:
		return contractx.RouteInvoice, nil
	case music && !invoice:
		return contractx.RouteMusic, nil
	default:
		return contractx.RouteGeneric, nil
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// HeuristicSummarizer tags preferences from a fixed genre vocabulary found
// in the user's messages, appended to the stored set without duplicates.
type HeuristicSummarizer struct{}

var _ contractx.MemorySummarizer = HeuristicSummarizer{}

var knownGenres = []string{"Rock", "Jazz", "Blues", "Pop", "Classical", "Metal", "Reggae", "Latin"}

func (HeuristicSummarizer) Summarize(_ context.Context, messages []contractx.Message, current contractx.MemoryProfile) (contractx.MemoryProfile, error) {
	updated := current
	updated.MusicPreferences = append([]string(nil), current.MusicPreferences...)

	seen := make(map[string]struct{}, len(updated.MusicPreferences))
	for _, p := range updated.MusicPreferences {
		seen[strings.ToLower(p)] = struct{}{}
	}

	for _, msg := range messages {
		if msg.Role != contractx.RoleUser {
			continue
		}
		lower := strings.ToLower(msg.Content)
		for _, genre := range knownGenres {
			if !strings.Contains(lower, strings.ToLower(genre)) {
				continue
			}
			if _, ok := seen[strings.ToLower(genre)]; ok {
				continue
			}
			seen[strings.ToLower(genre)] = struct{}{}
			updated.MusicPreferences = append(updated.MusicPreferences, genre)
		}
	}
	return updated, nil
}
