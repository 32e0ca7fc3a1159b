package contract

// Role tags an entry in the conversation log.
type Role string

const (
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the append-only conversation log.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// RouteDecision is the outcome of routing a turn. Produced once per run,
// never persisted.
type RouteDecision string

const (
	RouteIdentityRequired RouteDecision = "identity_required"
	RouteInvoice          RouteDecision = "invoice"
	RouteMusic            RouteDecision = "music"
	RouteGeneric          RouteDecision = "generic"
	RouteTerminate        RouteDecision = "terminate"
)

// AgentRole names an LLM-backed role for per-role model configuration.
type AgentRole string

const (
	AgentRoleExtractor  AgentRole = "extractor"
	AgentRoleRouter     AgentRole = "router"
	AgentRoleSummarizer AgentRole = "summarizer"
	AgentRoleInvoice    AgentRole = "invoice"
	AgentRoleMusic      AgentRole = "music"
	AgentRoleGeneric    AgentRole = "generic"
)

// MemoryProfile is the durable per-account preference record. Put replaces
// the whole record; callers carry forward fields they want to keep.
type MemoryProfile struct {
	AccountID        int64    `json:"account_id"`
	MusicPreferences []string `json:"music_preferences"`
}

// ResponderView is the read-only slice of session state a responder sees.
type ResponderView struct {
	AccountID    int64     `json:"account_id"`
	LoadedMemory string    `json:"loaded_memory"`
	Messages     []Message `json:"messages"`
}

// LatestUserMessage returns the content of the newest user entry in the view.
func (v ResponderView) LatestUserMessage() string {
	for i := len(v.Messages) - 1; i >= 0; i-- {
		if v.Messages[i].Role == RoleUser {
			return v.Messages[i].Content
		}
	}
	return ""
}

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
