// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"taskchat/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for
// testing.
type FakeService struct {
	mu            sync.RWMutex
	tasks         []service.Task
	conversations []service.Conversation
	messages      map[string][]service.Message
	nextTask      int
	nextConv      int

	// LastUpdate records the partial update passed to UpdateTask, so
	// tests can assert the toggle-vs-general routing decision.
	LastUpdate service.TaskUpdate

	// NextReply, when set, scripts the reply of the next SendMessage.
	NextReply *service.ChatReply

	// Error injection for testing
	ListTasksErr         error
	CreateTaskErr        error
	UpdateTaskErr        error
	DeleteTaskErr        error
	SendMessageErr       error
	ListConversationsErr error
	ListMessagesErr      error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		messages: make(map[string][]service.Message),
	}
}

// AddTask seeds a task.
func (f *FakeService) AddTask(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	f.tasks = append(f.tasks, service.Task{
		ID:        id,
		Title:     title,
		UserID:    "user-1",
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// AddConversation seeds a conversation.
func (f *FakeService) AddConversation(id, title, lastMessage string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	f.conversations = append(f.conversations, service.Conversation{
		ID:          id,
		Title:       title,
		LastMessage: lastMessage,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if f.messages[id] == nil {
		f.messages[id] = nil
	}
}

// AddMessage seeds a message in a conversation.
func (f *FakeService) AddMessage(conversationID, id, role, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[conversationID] = append(f.messages[conversationID], service.Message{
		ID:        id,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

// Tasks returns a copy of the current task list.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title, description string) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextTask++
	now := time.Now()
	task := service.Task{
		ID:          fmt.Sprintf("task-%d", f.nextTask),
		Title:       title,
		Description: description,
		UserID:      "user-1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service. A completion-only update
// toggles the flag, mirroring the server's toggle endpoint; anything
// else replaces title and description.
func (f *FakeService) UpdateTask(ctx context.Context, id string, upd service.TaskUpdate) (service.Task, error) {
	f.mu.Lock()
	f.LastUpdate = upd
	f.mu.Unlock()
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID != id {
			continue
		}
		if upd.CompletionOnly() {
			t.Completed = !t.Completed
		} else {
			if upd.Title == nil {
				return service.Task{}, errors.New("title required")
			}
			t.Title = *upd.Title
			if upd.Description != nil {
				t.Description = *upd.Description
			} else {
				t.Description = ""
			}
		}
		t.UpdatedAt = time.Now()
		f.tasks[i] = t
		return t, nil
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) (string, error) {
	if f.DeleteTaskErr != nil {
		return "", f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return "Task deleted successfully", nil
		}
	}
	return "", ErrNotFound
}

// SendMessage implements service.Service.
func (f *FakeService) SendMessage(ctx context.Context, text, conversationID string) (service.ChatReply, error) {
	if f.SendMessageErr != nil {
		return service.ChatReply{}, f.SendMessageErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if conversationID == "" {
		f.nextConv++
		conversationID = fmt.Sprintf("conv-%d", f.nextConv)
		now := time.Now()
		f.conversations = append(f.conversations, service.Conversation{
			ID:        conversationID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	reply := service.ChatReply{ConversationID: conversationID, Response: "done"}
	if f.NextReply != nil {
		reply.Response = f.NextReply.Response
		reply.ToolCalls = f.NextReply.ToolCalls
	}

	now := time.Now()
	f.messages[conversationID] = append(f.messages[conversationID],
		service.Message{
			ID:        fmt.Sprintf("msg-%d-user", len(f.messages[conversationID])+1),
			Role:      service.RoleUser,
			Content:   text,
			CreatedAt: now,
		},
		service.Message{
			ID:        fmt.Sprintf("msg-%d-assistant", len(f.messages[conversationID])+2),
			Role:      service.RoleAssistant,
			Content:   reply.Response,
			ToolCalls: reply.ToolCalls,
			CreatedAt: now,
		},
	)
	return reply, nil
}

// ListConversations implements service.Service.
func (f *FakeService) ListConversations(ctx context.Context) ([]service.Conversation, error) {
	if f.ListConversationsErr != nil {
		return nil, f.ListConversationsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Conversation, len(f.conversations))
	copy(out, f.conversations)
	return out, nil
}

// ListMessages implements service.Service.
func (f *FakeService) ListMessages(ctx context.Context, conversationID string) ([]service.Message, error) {
	if f.ListMessagesErr != nil {
		return nil, f.ListMessagesErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	msgs, ok := f.messages[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]service.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}
