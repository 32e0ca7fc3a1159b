package responder

import (
	"context"
	"reflect"
	"testing"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

func TestHeuristicExtractor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"email", "my email is luis@example.com thanks", "luis@example.com"},
		{"phone", "reach me at +15551234567 please", "+15551234567"},
		{"digits", "my id is 123", "123"},
		{"email wins over digits", "luis@example.com, id 123", "luis@example.com"},
		{"nothing", "hello there", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			messages := []contractx.Message{contractx.UserMessage(tt.text)}
			got, err := HeuristicExtractor{}.Extract(context.Background(), messages)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Extract(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestHeuristicExtractorUsesLatestUserMessage(t *testing.T) {
	t.Parallel()

	messages := []contractx.Message{
		contractx.UserMessage("my id is 123"),
		contractx.AssistantMessage("could you confirm?"),
		contractx.UserMessage("actually it is 456"),
	}
	got, err := HeuristicExtractor{}.Extract(context.Background(), messages)
	if err != nil {
		t.Fatal(err)
	}
	if got != "456" {
		t.Fatalf("Extract = %q, want the latest message's 456", got)
	}
}

func TestHeuristicRouter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want contractx.RouteDecision
	}{
		{"show me my invoices", contractx.RouteInvoice},
		{"I want a refund for this charge", contractx.RouteInvoice},
		{"recommend a jazz album", contractx.RouteMusic},
		{"who is the artist on that track?", contractx.RouteMusic},
		{"thanks", contractx.RouteTerminate},
		{"goodbye!", contractx.RouteTerminate},
		{"was I billed for that album?", contractx.RouteGeneric},
		{"what are your opening hours?", contractx.RouteGeneric},
	}
	for _, tt := range tests {
		view := contractx.ResponderView{Messages: []contractx.Message{contractx.UserMessage(tt.text)}}
		got, err := HeuristicRouter{}.Classify(context.Background(), view)
		if err != nil {
			t.Fatalf("Classify(%q): %v", tt.text, err)
		}
		if got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestHeuristicSummarizerAppendsGenres(t *testing.T) {
	t.Parallel()

	messages := []contractx.Message{
		contractx.UserMessage("I love rock and some blues"),
		contractx.AssistantMessage("noted, you like Metal"), // not a user message
		contractx.UserMessage("also jazz"),
	}
	current := contractx.MemoryProfile{AccountID: 123, MusicPreferences: []string{"Jazz"}}

	got, err := HeuristicSummarizer{}.Summarize(context.Background(), messages, current)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := []string{"Jazz", "Rock", "Blues"}
	if !reflect.DeepEqual(got.MusicPreferences, want) {
		t.Fatalf("preferences = %v, want %v", got.MusicPreferences, want)
	}
	// The input record must not be mutated.
	if len(current.MusicPreferences) != 1 {
		t.Fatalf("current mutated: %v", current.MusicPreferences)
	}
}
