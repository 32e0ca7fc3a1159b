package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
	nodex "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/nodes"
	statex "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/state"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidThread  = nodex.ErrInvalidThread
)

// RunResult is one turn's outcome: the new messages, whether the run
// suspended awaiting input, and any non-fatal warnings.
type RunResult struct {
	Messages  []contractx.Message
	Suspended bool
	Warnings  []string
}

// Orchestrator drives the turn state machine. All collaborators are
// injected; it owns no global state beyond per-thread run serialization.
type Orchestrator struct {
	store    statex.Store
	profiles contractx.ProfileStore
	resolver contractx.IdentityResolver
	models   contractx.Registry

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time

	// Turns within one thread are strictly sequential; distinct threads
	// may run concurrently.
	mu      sync.Mutex
	threads map[string]*sync.Mutex
}

func New(
	store statex.Store,
	profiles contractx.ProfileStore,
	resolver contractx.IdentityResolver,
	models contractx.Registry,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if profiles == nil {
		return nil, errors.New("profile store is required")
	}
	if resolver == nil {
		return nil, errors.New("identity resolver is required")
	}
	if models == nil {
		return nil, errors.New("model registry is required")
	}

	o := &Orchestrator{
		store:    store,
		profiles: profiles,
		resolver: resolver,
		models:   models,
		now:      time.Now,
		threads:  make(map[string]*sync.Mutex),
	}

	graphRunner, err := o.compileRunGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// Run processes one user turn (or resumption value) for a thread to
// completion or to its next suspension point.
func (o *Orchestrator) Run(ctx context.Context, threadID string, input string) (RunResult, error) {
	unlock := o.lockThread(strings.TrimSpace(threadID))
	defer unlock()

	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		ThreadID: threadID,
		Text:     input,
	})
	if err != nil {
		// The graph runtime may rewrap node errors, so match the chain
		// and the message.
		if errors.Is(err, contractx.ErrStorage) || strings.Contains(err.Error(), contractx.ErrStorage.Error()) {
			// The snapshot could not be restored; answer without touching
			// thread state rather than surfacing a technical failure.
			return RunResult{
				Messages: []contractx.Message{contractx.AssistantMessage(
					"I'm having trouble accessing your session right now. Please try again in a moment.")},
			}, nil
		}
		return RunResult{}, err
	}

	return RunResult{
		Messages:  out.Replies,
		Suspended: out.Suspended,
		Warnings:  out.Warnings,
	}, nil
}

func (o *Orchestrator) lockThread(threadID string) func() {
	o.mu.Lock()
	lock, ok := o.threads[threadID]
	if !ok {
		lock = &sync.Mutex{}
		o.threads[threadID] = lock
	}
	o.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
