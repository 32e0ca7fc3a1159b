package responder

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

// genericResponder handles greetings, farewells, and anything no specialized
// responder claims. One structured pass, no tools.
type genericResponder struct {
	runner compose.Runnable[map[string]any, responderLLMOutput]
}

var _ contractx.Responder = (*genericResponder)(nil)

func newGenericResponder(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*genericResponder, error) {
	runner, err := compileStructuredLLMGraph[responderLLMOutput](ctx, chatModel, systemPrompt, "responder.generic")
	if err != nil {
		return nil, fmt.Errorf("%w: compile generic responder graph: %v", contractx.ErrModelInvoke, err)
	}
	return &genericResponder{runner: runner}, nil
}

func (r *genericResponder) Invoke(ctx context.Context, view contractx.ResponderView) ([]contractx.Message, error) {
	out, err := r.runner.Invoke(ctx, map[string]any{
		"input": mustPayload(map[string]any{
			"user_message": view.LatestUserMessage(),
			"memory":       view.LoadedMemory,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: generic responder invoke: %v", contractx.ErrModelInvoke, err)
	}

	message := strings.TrimSpace(out.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: generic responder message is empty", contractx.ErrSchemaViolation)
	}
	return []contractx.Message{contractx.AssistantMessage(message)}, nil
}
