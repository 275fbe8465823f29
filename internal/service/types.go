package service

import "time"

// User is the authenticated identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Task represents a single task item.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"is_completed"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskUpdate is a partial update to a task. Nil fields are unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// CompletionOnly reports whether the update consists solely of the
// completion flag. Such updates route to the dedicated toggle endpoint.
func (u TaskUpdate) CompletionOnly() bool {
	return u.Completed != nil && u.Title == nil && u.Description == nil
}

// ToolCall records an action the chat agent performed against the task
// store on the user's behalf.
type ToolCall struct {
	ToolName   string         `json:"tool_name"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Result     string         `json:"result,omitempty"`
	Success    bool           `json:"success"`
}

// ChatReply is the agent's response to one sent message.
type ChatReply struct {
	ConversationID string
	Response       string
	ToolCalls      []ToolCall
}

// Conversation summarizes a chat conversation for list views.
type Conversation struct {
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	LastMessage string    `json:"last_message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Message roles as wired by the server.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single message in a conversation.
type Message struct {
	ID        string     `json:"id"`
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
