// Package rest implements the service.Service interface against the
// remote task and chat endpoints.
package rest

import (
	"context"
	"fmt"

	"taskchat/internal/api"
	"taskchat/internal/auth"
	"taskchat/internal/service"
)

// Client implements service.Service over the HTTP API. Every operation
// resolves the user id from the session first and fails with
// service.ErrNotAuthenticated before any network call when no user is
// signed in.
type Client struct {
	api     *api.Client
	session *auth.Session
}

// New creates a backend client bound to a session.
func New(apiClient *api.Client, session *auth.Session) *Client {
	return &Client{api: apiClient, session: session}
}

func (c *Client) userID() (string, error) {
	user, ok := c.session.User()
	if !ok {
		return "", service.ErrNotAuthenticated
	}
	return user.ID, nil
}

type taskListResponse struct {
	Tasks []service.Task `json:"tasks"`
}

type taskCreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

type taskUpdateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

type deleteResponse struct {
	Message string `json:"message"`
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	uid, err := c.userID()
	if err != nil {
		return nil, err
	}
	var resp taskListResponse
	if err := c.api.Get(ctx, fmt.Sprintf("/api/%s/tasks", uid), &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, title, description string) (service.Task, error) {
	uid, err := c.userID()
	if err != nil {
		return service.Task{}, err
	}
	req := taskCreateRequest{Title: title}
	if description != "" {
		req.Description = &description
	}
	var task service.Task
	if err := c.api.Post(ctx, fmt.Sprintf("/api/%s/tasks", uid), req, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask implements service.Service. A completion-only update hits
// the dedicated toggle endpoint; everything else hits the general
// update endpoint, which does not accept completion changes and
// requires the full title. The bifurcation is a fixed server contract.
func (c *Client) UpdateTask(ctx context.Context, id string, upd service.TaskUpdate) (service.Task, error) {
	uid, err := c.userID()
	if err != nil {
		return service.Task{}, err
	}

	var task service.Task
	if upd.CompletionOnly() {
		if err := c.api.Patch(ctx, fmt.Sprintf("/api/%s/tasks/%s/complete", uid, id), nil, &task); err != nil {
			return service.Task{}, err
		}
		return task, nil
	}

	if upd.Title == nil || *upd.Title == "" {
		return service.Task{}, fmt.Errorf("update requires the full title")
	}
	req := taskUpdateRequest{Title: *upd.Title, Description: upd.Description}
	if err := c.api.Put(ctx, fmt.Sprintf("/api/%s/tasks/%s", uid, id), req, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) (string, error) {
	uid, err := c.userID()
	if err != nil {
		return "", err
	}
	var resp deleteResponse
	if err := c.api.Delete(ctx, fmt.Sprintf("/api/%s/tasks/%s", uid, id), &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

type chatRequest struct {
	Message        string  `json:"message"`
	ConversationID *string `json:"conversation_id"`
}

type chatResponse struct {
	ConversationID string             `json:"conversation_id"`
	Response       string             `json:"response"`
	ToolCalls      []service.ToolCall `json:"tool_calls"`
}

type conversationListResponse struct {
	Conversations []service.Conversation `json:"conversations"`
}

type messageListResponse struct {
	ConversationID string            `json:"conversation_id"`
	Messages       []service.Message `json:"messages"`
}

// SendMessage implements service.Service.
func (c *Client) SendMessage(ctx context.Context, text, conversationID string) (service.ChatReply, error) {
	uid, err := c.userID()
	if err != nil {
		return service.ChatReply{}, err
	}
	req := chatRequest{Message: text}
	if conversationID != "" {
		req.ConversationID = &conversationID
	}
	var resp chatResponse
	if err := c.api.Post(ctx, fmt.Sprintf("/api/%s/chat", uid), req, &resp); err != nil {
		return service.ChatReply{}, err
	}
	return service.ChatReply{
		ConversationID: resp.ConversationID,
		Response:       resp.Response,
		ToolCalls:      resp.ToolCalls,
	}, nil
}

// ListConversations implements service.Service.
func (c *Client) ListConversations(ctx context.Context) ([]service.Conversation, error) {
	uid, err := c.userID()
	if err != nil {
		return nil, err
	}
	var resp conversationListResponse
	if err := c.api.Get(ctx, fmt.Sprintf("/api/%s/conversations", uid), &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

// ListMessages implements service.Service.
func (c *Client) ListMessages(ctx context.Context, conversationID string) ([]service.Message, error) {
	uid, err := c.userID()
	if err != nil {
		return nil, err
	}
	var resp messageListResponse
	if err := c.api.Get(ctx, fmt.Sprintf("/api/%s/conversations/%s/messages", uid, conversationID), &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}
