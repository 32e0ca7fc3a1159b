package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/uptrace/bun"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

// Executor runs one named tool. Tool failures are reported in the result,
// not as errors, so a bad query never aborts a delegation cycle.
type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// BuildForRoute returns the tool schemas and executor for a delegation route.
func BuildForRoute(route contractx.RouteDecision, db bun.IDB) ([]*schema.ToolInfo, Executor) {
	return infosForRoute(route), NewExecutor(route, db)
}

func NewExecutor(route contractx.RouteDecision, db bun.IDB) Executor {
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		result, err := execute(ctx, db, route, tool, args)
		if err != nil {
			return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
		}
		return contractx.ToolResult{Tool: tool, Result: result}, nil
	}
}

func execute(ctx context.Context, db bun.IDB, route contractx.RouteDecision, tool string, args map[string]any) (any, error) {
	if db == nil {
		return nil, fmt.Errorf("tool=%s has no database", tool)
	}

	switch route {
	case contractx.RouteInvoice:
		return executeInvoiceTool(ctx, db, tool, args)
	case contractx.RouteMusic:
		return executeMusicTool(ctx, db, tool, args)
	default:
		return nil, fmt.Errorf("tool=%s is unavailable for route=%s", tool, route)
	}
}

func infosForRoute(route contractx.RouteDecision) []*schema.ToolInfo {
	switch route {
	case contractx.RouteInvoice:
		return invoiceToolInfos()
	case contractx.RouteMusic:
		return musicToolInfos()
	default:
		return nil
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing argument %q", key)
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("argument %q must be a non-empty string", key)
	}
	return s, nil
}

func int64Arg(args map[string]any, key string) (int64, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	default:
		return 0, fmt.Errorf("argument %q must be a number", key)
	}
}
