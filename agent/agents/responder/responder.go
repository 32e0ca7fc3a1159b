package responder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
	toolx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/tool"
)

// A responder may plan and execute tools for a few rounds before it has to
// finalize an answer.
const maxToolRounds = 3

// specializedResponder answers queries for one capability (invoice or
// music). It plans tool calls with a tool-bound model, executes them against
// the catalog database, and finalizes with a structured pass. From the
// supervisor's perspective all of that is a single Invoke.
type specializedResponder struct {
	route            contractx.RouteDecision
	toolRunner       compose.Runnable[map[string]any, *schema.Message]
	structuredRunner compose.Runnable[map[string]any, responderLLMOutput]
	exec             toolx.Executor
	allowedTools     map[string]struct{}
}

type responderLLMOutput struct {
	Message string `json:"message"`
}

var _ contractx.Responder = (*specializedResponder)(nil)

func newSpecializedResponder(
	ctx context.Context,
	route contractx.RouteDecision,
	chatModel einomodel.ToolCallingChatModel,
	systemPrompt string,
	tools []*schema.ToolInfo,
	exec toolx.Executor,
) (*specializedResponder, error) {
	structuredRunner, err := compileStructuredLLMGraph[responderLLMOutput](
		ctx, chatModel, systemPrompt, fmt.Sprintf("responder.%s.finalize", route))
	if err != nil {
		return nil, fmt.Errorf("%w: compile finalize graph for route=%s: %v", contractx.ErrModelInvoke, route, err)
	}

	toolModel, err := chatModel.WithTools(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools for route=%s: %v", contractx.ErrModelInvoke, route, err)
	}
	toolRunner, err := compileToolPlanningGraph(
		ctx, toolModel, systemPrompt, fmt.Sprintf("responder.%s.tool_planning", route))
	if err != nil {
		return nil, fmt.Errorf("%w: compile tool planning graph for route=%s: %v", contractx.ErrModelInvoke, route, err)
	}

	allowed := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if t == nil || strings.TrimSpace(t.Name) == "" {
			continue
		}
		allowed[t.Name] = struct{}{}
	}

	return &specializedResponder{
		route:            route,
		toolRunner:       toolRunner,
		structuredRunner: structuredRunner,
		exec:             exec,
		allowedTools:     allowed,
	}, nil
}

func (r *specializedResponder) Invoke(ctx context.Context, view contractx.ResponderView) ([]contractx.Message, error) {
	var results []contractx.ToolResult

	for round := 0; round < maxToolRounds; round++ {
		msg, err := r.toolRunner.Invoke(ctx, map[string]any{
			"input": mustPayload(r.planPayload(view, results)),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: tool planning invoke: %v", contractx.ErrModelInvoke, err)
		}
		if msg == nil {
			return nil, fmt.Errorf("%w: empty tool planning response", contractx.ErrSchemaViolation)
		}

		reqs, err := toToolRequests(msg.ToolCalls)
		if err != nil {
			return nil, err
		}
		if len(reqs) == 0 {
			// The model answered directly without tools.
			if content := strings.TrimSpace(msg.Content); content != "" {
				return []contractx.Message{contractx.AssistantMessage(content)}, nil
			}
			break
		}

		for _, req := range reqs {
			if _, ok := r.allowedTools[req.Tool]; !ok {
				return nil, fmt.Errorf("%w: tool=%s is not allowed for route=%s", contractx.ErrSchemaViolation, req.Tool, r.route)
			}
			if req.Args == nil {
				req.Args = map[string]any{}
			}
			// Tools always act on the verified account, whatever the
			// model put in the arguments.
			req.Args["account_id"] = view.AccountID

			res, err := r.exec(ctx, req.Tool, req.Args)
			if err != nil {
				res = contractx.ToolResult{Tool: req.Tool, Error: err.Error()}
			}
			results = append(results, res)
		}
	}

	out, err := r.structuredRunner.Invoke(ctx, map[string]any{
		"input": mustPayload(r.finalizePayload(view, results)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: finalize invoke: %v", contractx.ErrModelInvoke, err)
	}

	message := strings.TrimSpace(out.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: responder message is empty", contractx.ErrSchemaViolation)
	}
	return []contractx.Message{contractx.AssistantMessage(message)}, nil
}

func (r *specializedResponder) planPayload(view contractx.ResponderView, results []contractx.ToolResult) map[string]any {
	return map[string]any{
		"mode":         "act",
		"account_id":   view.AccountID,
		"user_message": view.LatestUserMessage(),
		"memory":       view.LoadedMemory,
		"tool_results": results,
	}
}

func (r *specializedResponder) finalizePayload(view contractx.ResponderView, results []contractx.ToolResult) map[string]any {
	return map[string]any{
		"mode":         "finalize",
		"account_id":   view.AccountID,
		"user_message": view.LatestUserMessage(),
		"memory":       view.LoadedMemory,
		"messages":     view.Messages,
		"tool_results": results,
	}
}

func mustPayload(payload map[string]any) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		// Payload values are plain data; marshal cannot fail in practice.
		return "{}"
	}
	return string(raw)
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, tool, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{Tool: tool, Args: args})
	}
	return reqs, nil
}
