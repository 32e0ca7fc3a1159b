package orchestratornode

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

const apologyText = "I'm sorry, I ran into a problem while working on your request. " +
	"Could you try asking again?"

// DispatchResponder is the delegation supervisor: it picks exactly one
// responder for the turn and folds its output into the conversation log.
// A responder failure is absorbed locally as a generic apology so the run
// still reaches persist-memory.
func DispatchResponder(ctx context.Context, in *GraphState, models contractx.Registry) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, ErrNoSession
	}

	view := in.Session.View()
	in.Route = decideRoute(ctx, view, models.Router())

	msgs, err := pickResponder(in.Route, models).Invoke(ctx, view)
	if err != nil {
		log.Warn().Err(err).Str("route", string(in.Route)).Msg("responder failed, substituting apology")
		msgs = nil
	}
	if len(msgs) == 0 {
		msgs = []contractx.Message{contractx.AssistantMessage(apologyText)}
	}

	for _, msg := range msgs {
		if err := in.reply(msg); err != nil {
			return nil, err
		}
	}
	return in, nil
}

func decideRoute(ctx context.Context, view contractx.ResponderView, classifier contractx.RouteClassifier) contractx.RouteDecision {
	if route, ok := KeywordRoute(view.LatestUserMessage()); ok {
		return route
	}

	route, err := classifier.Classify(ctx, view)
	if err != nil {
		log.Warn().Err(err).Msg("route classification failed, falling back to generic")
		return contractx.RouteGeneric
	}
	return route
}

func pickResponder(route contractx.RouteDecision, models contractx.Registry) contractx.Responder {
	switch route {
	case contractx.RouteInvoice:
		return models.Invoice()
	case contractx.RouteMusic:
		return models.Music()
	default:
		// Generic also covers terminate: a short courtesy reply.
		return models.Generic()
	}
}
