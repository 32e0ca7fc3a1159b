package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/nodes"
)

// compileRunGraph wires the turn state machine:
//
//	START -> validate_request -> load_session -> verify_identity
//	verify_identity -> await_input -> END            (unverified: suspend)
//	verify_identity -> load_memory -> dispatch_responder
//	              -> persist_memory -> save_session -> finalize_reply -> END
func (o *Orchestrator) compileRunGraph(ctx context.Context) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, o.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_session",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.LoadSession(ctx, in, o.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_session: %w", err)
	}

	if err := graph.AddLambdaNode("verify_identity",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.VerifyIdentity(ctx, in, o.resolver, o.models.Extractor())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node verify_identity: %w", err)
	}

	if err := graph.AddLambdaNode("await_input",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.AwaitInput(ctx, in, o.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node await_input: %w", err)
	}

	if err := graph.AddLambdaNode("load_memory",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.LoadMemory(ctx, in, o.profiles)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_memory: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch_responder",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.DispatchResponder(ctx, in, o.models)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch_responder: %w", err)
	}

	if err := graph.AddLambdaNode("persist_memory",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.PersistMemory(ctx, in, o.models.Summarizer(), o.profiles)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node persist_memory: %w", err)
	}

	if err := graph.AddLambdaNode("save_session",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.SaveSession(ctx, in, o.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node save_session: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in == nil || in.Session == nil {
				return "", nodex.ErrNoSession
			}
			if in.Session.Verified() {
				return "load_memory", nil
			}
			return "await_input", nil
		},
		map[string]bool{
			"load_memory": true,
			"await_input": true,
		},
	)

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_session"},
		{"load_session", "verify_identity"},
		{"await_input", compose.END},
		{"load_memory", "dispatch_responder"},
		{"dispatch_responder", "persist_memory"},
		{"persist_memory", "save_session"},
		{"save_session", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}
	if err := graph.AddBranch("verify_identity", branch); err != nil {
		return nil, fmt.Errorf("add verify_identity branch: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.run"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
