package orchestratornode

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
	statex "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidThread  = errors.New("thread id is empty")
	ErrNoSession      = errors.New("session state is missing")
)

// GraphInput is one orchestrator entry: a fresh user message or the
// resumption value of a suspended thread.
type GraphInput struct {
	ThreadID string
	Text     string
}

// GraphOutput is what a run hands back to the front end.
type GraphOutput struct {
	// Replies holds the system/assistant messages produced this turn.
	Replies []contractx.Message
	// Suspended means the run stopped awaiting input; the next call for
	// this thread resumes it.
	Suspended bool
	// Warnings carry non-fatal degradations (e.g. a failed memory write).
	Warnings []string
}

// GraphState is the mutable carrier threaded through the node graph for one
// run.
type GraphState struct {
	ThreadID string
	Text     string
	Now      time.Time

	Session *statex.SessionState

	// Profile and ProfileFound hold the stored memory record read at
	// load-memory, kept for field carry-forward at persist-memory.
	Profile      contractx.MemoryProfile
	ProfileFound bool

	Route contractx.RouteDecision

	Replies  []contractx.Message
	Warnings []string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	threadID := strings.TrimSpace(in.ThreadID)
	if threadID == "" {
		return nil, ErrInvalidThread
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		ThreadID: threadID,
		Text:     text,
		Now:      nowFn().UTC(),
	}, nil
}

func (s *GraphState) warn(message string) {
	s.Warnings = append(s.Warnings, message)
}

func (s *GraphState) reply(msg contractx.Message) error {
	if err := s.Session.AppendMessage(msg); err != nil {
		return err
	}
	s.Replies = append(s.Replies, msg)
	return nil
}
