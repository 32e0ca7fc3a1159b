package responder

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

// The oracles are structured-output LLM calls with closed schemas. Each call
// site tolerates failure: the orchestrator maps an oracle error to "no
// decision" and takes its fallback branch.

type extractorOutput struct {
	Identifier string `json:"identifier"`
}

type llmExtractor struct {
	runner compose.Runnable[map[string]any, extractorOutput]
}

var _ contractx.IdentifierExtractor = (*llmExtractor)(nil)

func newLLMExtractor(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*llmExtractor, error) {
	runner, err := compileStructuredLLMGraph[extractorOutput](ctx, chatModel, systemPrompt, "oracle.extractor")
	if err != nil {
		return nil, fmt.Errorf("%w: compile extractor graph: %v", contractx.ErrModelInvoke, err)
	}
	return &llmExtractor{runner: runner}, nil
}

func (e *llmExtractor) Extract(ctx context.Context, messages []contractx.Message) (string, error) {
	out, err := e.runner.Invoke(ctx, map[string]any{
		"input": mustPayload(map[string]any{"messages": messages}),
	})
	if err != nil {
		return "", fmt.Errorf("%w: extractor invoke: %v", contractx.ErrModelInvoke, err)
	}
	return strings.TrimSpace(out.Identifier), nil
}

type routerOutput struct {
	Destination string `json:"destination"`
}

type llmRouter struct {
	runner compose.Runnable[map[string]any, routerOutput]
}

var _ contractx.RouteClassifier = (*llmRouter)(nil)

func newLLMRouter(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*llmRouter, error) {
	runner, err := compileStructuredLLMGraph[routerOutput](ctx, chatModel, systemPrompt, "oracle.router")
	if err != nil {
		return nil, fmt.Errorf("%w: compile router graph: %v", contractx.ErrModelInvoke, err)
	}
	return &llmRouter{runner: runner}, nil
}

func (r *llmRouter) Classify(ctx context.Context, view contractx.ResponderView) (contractx.RouteDecision, error) {
	out, err := r.runner.Invoke(ctx, map[string]any{
		"input": mustPayload(map[string]any{
			"user_message": view.LatestUserMessage(),
			"memory":       view.LoadedMemory,
		}),
	})
	if err != nil {
		return "", fmt.Errorf("%w: router invoke: %v", contractx.ErrModelInvoke, err)
	}

	switch strings.ToLower(strings.TrimSpace(out.Destination)) {
	case "invoice":
		return contractx.RouteInvoice, nil
	case "music":
		return contractx.RouteMusic, nil
	case "generic":
		return contractx.RouteGeneric, nil
	case "terminate", "end":
		return contractx.RouteTerminate, nil
	default:
		return "", fmt.Errorf("%w: unknown destination %q", contractx.ErrSchemaViolation, out.Destination)
	}
}

type summarizerOutput struct {
	MusicPreferences []string `json:"music_preferences"`
}

type llmSummarizer struct {
	runner compose.Runnable[map[string]any, summarizerOutput]
}

var _ contractx.MemorySummarizer = (*llmSummarizer)(nil)

func newLLMSummarizer(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*llmSummarizer, error) {
	runner, err := compileStructuredLLMGraph[summarizerOutput](ctx, chatModel, systemPrompt, "oracle.summarizer")
	if err != nil {
		return nil, fmt.Errorf("%w: compile summarizer graph: %v", contractx.ErrModelInvoke, err)
	}
	return &llmSummarizer{runner: runner}, nil
}

// Summarize carries forward every field of the current profile and applies
// only what the oracle returned, so an omitted field is never lost.
func (s *llmSummarizer) Summarize(ctx context.Context, messages []contractx.Message, current contractx.MemoryProfile) (contractx.MemoryProfile, error) {
	out, err := s.runner.Invoke(ctx, map[string]any{
		"input": mustPayload(map[string]any{
			"messages":           messages,
			"stored_preferences": current.MusicPreferences,
		}),
	})
	if err != nil {
		return contractx.MemoryProfile{}, fmt.Errorf("%w: summarizer invoke: %v", contractx.ErrModelInvoke, err)
	}

	updated := current
	if out.MusicPreferences != nil {
		updated.MusicPreferences = out.MusicPreferences
	}
	return updated, nil
}
