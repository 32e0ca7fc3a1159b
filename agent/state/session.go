package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

var (
	ErrInvalidThread     = errors.New("thread id is empty")
	ErrAccountAlreadySet = errors.New("account id is already set")
	ErrEmptyMessage      = errors.New("message content is empty")
)

// SessionState is the per-thread record the orchestrator threads through a
// run. Messages is append-only; AccountID is set at most once per thread
// lifetime. LoadedMemory is derived from the profile store every run and is
// never persisted.
type SessionState struct {
	ThreadID  string              `json:"thread_id"`
	AccountID *int64              `json:"account_id,omitempty"`
	Messages  []contractx.Message `json:"messages"`

	// AwaitingInput marks a suspended run; the next input for this thread
	// is treated as the resumption value.
	AwaitingInput bool `json:"awaiting_input,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`

	LoadedMemory string `json:"-"`
}

func NewSessionState(threadID string, now time.Time) *SessionState {
	return &SessionState{
		ThreadID:  threadID,
		UpdatedAt: now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// Verified reports whether the thread has a resolved account id.
func (s *SessionState) Verified() bool {
	return s != nil && s.AccountID != nil
}

// SetAccountID sets the account id exactly once. Re-setting the same id is a
// no-op; changing it is an error.
func (s *SessionState) SetAccountID(id int64) error {
	if s == nil {
		return errors.New("nil session state")
	}
	if s.AccountID != nil {
		if *s.AccountID == id {
			return nil
		}
		return fmt.Errorf("%w: have=%d new=%d", ErrAccountAlreadySet, *s.AccountID, id)
	}
	s.AccountID = &id
	return nil
}

// AppendMessage appends one entry to the conversation log.
func (s *SessionState) AppendMessage(msg contractx.Message) error {
	if s == nil {
		return errors.New("nil session state")
	}
	if strings.TrimSpace(msg.Content) == "" {
		return ErrEmptyMessage
	}
	s.Messages = append(s.Messages, msg)
	return nil
}

// LastUserMessage returns the content of the newest user entry.
func (s *SessionState) LastUserMessage() (string, bool) {
	if s == nil {
		return "", false
	}
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == contractx.RoleUser {
			return s.Messages[i].Content, true
		}
	}
	return "", false
}

// View produces the read-only slice of state handed to responders.
func (s *SessionState) View() contractx.ResponderView {
	view := contractx.ResponderView{
		LoadedMemory: s.LoadedMemory,
		Messages:     append([]contractx.Message(nil), s.Messages...),
	}
	if s.AccountID != nil {
		view.AccountID = *s.AccountID
	}
	return view
}

func (s *SessionState) Validate() error {
	if strings.TrimSpace(s.ThreadID) == "" {
		return ErrInvalidThread
	}
	for i, msg := range s.Messages {
		switch msg.Role {
		case contractx.RoleUser, contractx.RoleSystem, contractx.RoleAssistant:
		default:
			return fmt.Errorf("message %d has invalid role %q", i, msg.Role)
		}
	}
	return nil
}
