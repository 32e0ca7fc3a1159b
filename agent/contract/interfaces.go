package contract

import "context"

// IdentityResolver maps a free-form identifier to a canonical account id.
// Lookup failures degrade to a miss; the caller re-prompts the user.
type IdentityResolver interface {
	Resolve(ctx context.Context, identifier string) (int64, bool)
}

// ProfileStore is the durable key-value store for memory profiles.
// Get distinguishes "never seen" (ok=false) from "seen with no preferences".
// Put is a whole-record replace visible to a subsequent Get.
type ProfileStore interface {
	Get(ctx context.Context, accountID int64) (MemoryProfile, bool, error)
	Put(ctx context.Context, profile MemoryProfile) error
}

// IdentifierExtractor pulls a candidate account identifier out of the
// conversation. An empty result means no identifier was found.
type IdentifierExtractor interface {
	Extract(ctx context.Context, messages []Message) (string, error)
}

// RouteClassifier decides the delegation target for the latest user message.
type RouteClassifier interface {
	Classify(ctx context.Context, view ResponderView) (RouteDecision, error)
}

// MemorySummarizer reconciles the conversation log against the stored
// profile and returns the updated record.
type MemorySummarizer interface {
	Summarize(ctx context.Context, messages []Message, current MemoryProfile) (MemoryProfile, error)
}

// Responder produces the user-facing answer for one delegation cycle. It may
// loop over its own tools internally but is a single call from the outside.
type Responder interface {
	Invoke(ctx context.Context, view ResponderView) ([]Message, error)
}

// Registry is the fixed roster of oracles and responders.
type Registry interface {
	Extractor() IdentifierExtractor
	Router() RouteClassifier
	Summarizer() MemorySummarizer
	Invoice() Responder
	Music() Responder
	Generic() Responder
}
