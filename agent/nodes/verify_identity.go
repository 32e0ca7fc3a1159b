package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

const clarificationText = "I wasn't able to verify your account. " +
	"Could you provide your account ID, phone number (starting with +), or email address?"

// VerifyIdentity resolves the caller's identity once per thread. A verified
// session passes through untouched; otherwise the extraction oracle proposes
// a candidate identifier and the resolver checks it. Any miss produces a
// clarification request, which routes the run to the suspension point.
func VerifyIdentity(
	ctx context.Context,
	in *GraphState,
	resolver contractx.IdentityResolver,
	extractor contractx.IdentifierExtractor,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, ErrNoSession
	}
	if in.Session.Verified() {
		return in, nil
	}

	candidate, err := extractor.Extract(ctx, in.Session.Messages)
	if err != nil {
		// Oracle failure means "no decision"; fall to the re-prompt path.
		log.Warn().Err(err).Str("thread_id", in.ThreadID).Msg("identifier extraction failed")
		candidate = ""
	}

	if candidate != "" {
		if id, ok := resolver.Resolve(ctx, candidate); ok {
			if err := in.Session.SetAccountID(id); err != nil {
				return nil, fmt.Errorf("%w: %v", contractx.ErrValidation, err)
			}
			confirmation := contractx.SystemMessage(
				fmt.Sprintf("Thank you! Your account (id %d) has been verified.", id))
			if err := in.reply(confirmation); err != nil {
				return nil, err
			}
			return in, nil
		}
	}

	if err := in.reply(contractx.AssistantMessage(clarificationText)); err != nil {
		return nil, err
	}
	return in, nil
}
