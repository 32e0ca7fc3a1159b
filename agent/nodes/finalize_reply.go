package orchestratornode

import (
	"context"

	"github.com/rs/zerolog/log"

	statex "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/state"
)

// SaveSession persists the terminal snapshot of a completed turn. A failed
// save is surfaced as a warning; the conversation's answer is still
// returned.
func SaveSession(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, ErrNoSession
	}

	in.Session.Touch(in.Now)
	if err := in.Session.Validate(); err != nil {
		return nil, err
	}
	if err := store.Save(ctx, in.Session); err != nil {
		log.Warn().Err(err).Str("thread_id", in.ThreadID).Msg("failed to persist session")
		in.warn("your session could not be saved")
	}
	return in, nil
}

// FinalizeReply produces the completed-run output.
func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, ErrNoSession
	}
	return GraphOutput{
		Replies:  in.Replies,
		Warnings: in.Warnings,
	}, nil
}
