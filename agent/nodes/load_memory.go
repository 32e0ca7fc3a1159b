package orchestratornode

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
	memoryx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/memory"
)

// LoadMemory derives the turn's memory context from the profile store.
// Storage failure degrades to empty context; the run continues.
func LoadMemory(ctx context.Context, in *GraphState, profiles contractx.ProfileStore) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, ErrNoSession
	}
	if !in.Session.Verified() {
		return nil, ErrNoSession
	}
	accountID := *in.Session.AccountID

	profile, found, err := profiles.Get(ctx, accountID)
	if err != nil {
		log.Warn().Err(err).Int64("account_id", accountID).Msg("memory read failed, continuing without context")
		in.Session.LoadedMemory = ""
		return in, nil
	}

	in.Profile = profile
	in.ProfileFound = found
	if found {
		in.Session.LoadedMemory = memoryx.FormatProfile(profile)
	} else {
		in.Session.LoadedMemory = ""
	}
	return in, nil
}
