package orchestratornode

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

// PersistMemory reconciles the conversation against the stored profile and
// writes the result back. The write is unconditional but idempotent when
// nothing changed. Fields the summarizer omits are carried forward from the
// record read at load-memory, so a partial update never loses data.
func PersistMemory(
	ctx context.Context,
	in *GraphState,
	summarizer contractx.MemorySummarizer,
	profiles contractx.ProfileStore,
) (*GraphState, error) {
	if in == nil || in.Session == nil || !in.Session.Verified() {
		return nil, ErrNoSession
	}
	accountID := *in.Session.AccountID

	current := in.Profile
	current.AccountID = accountID

	updated, err := summarizer.Summarize(ctx, in.Session.Messages, current)
	if err != nil {
		// No decision from the oracle: write the current record back
		// unchanged, which keeps the write idempotent.
		log.Warn().Err(err).Int64("account_id", accountID).Msg("memory summarization failed")
		updated = current
	}
	updated.AccountID = accountID
	if updated.MusicPreferences == nil {
		updated.MusicPreferences = current.MusicPreferences
	}

	if err := profiles.Put(ctx, updated); err != nil {
		log.Warn().Err(err).Int64("account_id", accountID).Msg("memory write failed")
		in.warn("your preferences could not be saved this time")
	}
	return in, nil
}
