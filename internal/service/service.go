// Package service defines the backend-agnostic interface for task and
// chat operations.
package service

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned before any network call when no user
// id can be resolved from the session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Service defines the interface for backend operations. All remote API
// calls go through this interface; commands and TUI models never build
// HTTP requests directly.
type Service interface {
	// ListTasks returns all tasks owned by the authenticated user,
	// in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task. description may be empty.
	CreateTask(ctx context.Context, title, description string) (Task, error)

	// UpdateTask applies a partial update. A completion-only update
	// routes to the toggle endpoint; any other update routes to the
	// general update endpoint, which requires the full title.
	UpdateTask(ctx context.Context, id string, upd TaskUpdate) (Task, error)

	// DeleteTask deletes a task and returns the server's confirmation
	// message.
	DeleteTask(ctx context.Context, id string) (string, error)

	// SendMessage sends a chat message to the agent. conversationID may
	// be empty to start a new conversation.
	SendMessage(ctx context.Context, text, conversationID string) (ChatReply, error)

	// ListConversations returns the user's conversations, most recent
	// first.
	ListConversations(ctx context.Context) ([]Conversation, error)

	// ListMessages returns all messages of a conversation in order.
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)
}
