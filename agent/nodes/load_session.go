package orchestratornode

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
	statex "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/state"
)

// LoadSession restores the thread's snapshot (or creates a fresh one) and
// appends the incoming text as the newest user message. A resumed thread
// re-enters verification with its prior log intact.
func LoadSession(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	st, err := store.Load(ctx, in.ThreadID)
	if err != nil {
		if !errors.Is(err, statex.ErrStateNotFound) {
			return nil, fmt.Errorf("%w: load session thread=%s: %v", contractx.ErrStorage, in.ThreadID, err)
		}
		st = statex.NewSessionState(in.ThreadID, in.Now)
	}

	// Consuming the resumption value lifts the suspension.
	st.AwaitingInput = false

	if err := st.AppendMessage(contractx.UserMessage(in.Text)); err != nil {
		return nil, fmt.Errorf("%w: append user message: %v", contractx.ErrValidation, err)
	}

	in.Session = st
	return in, nil
}
