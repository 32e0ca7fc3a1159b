package orchestratornode

import (
	"context"

	"github.com/rs/zerolog/log"

	statex "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/state"
)

// AwaitInput is the suspension point. It snapshots the session with the
// awaiting flag set and ends the run early; the persisted state is the
// continuation the next call resumes from.
func AwaitInput(ctx context.Context, in *GraphState, store statex.Store) (GraphOutput, error) {
	if in == nil || in.Session == nil {
		return GraphOutput{}, ErrNoSession
	}

	in.Session.AwaitingInput = true
	in.Session.Touch(in.Now)

	if err := store.Save(ctx, in.Session); err != nil {
		log.Warn().Err(err).Str("thread_id", in.ThreadID).Msg("failed to persist suspended session")
		in.warn("your session could not be saved; you may be asked to verify again")
	}

	return GraphOutput{
		Replies:   in.Replies,
		Suspended: true,
		Warnings:  in.Warnings,
	}, nil
}
