package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskchat/internal/api"
	"taskchat/internal/auth"
	"taskchat/internal/config"
	"taskchat/internal/service"
)

// newTestClient wires a backend client signed in as u1 against srv.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	store := auth.NewStore(&config.Config{Dir: t.TempDir()})
	if err := store.SaveToken("tok-1"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveUser(service.User{ID: "u1", Email: "a@b.co"}); err != nil {
		t.Fatal(err)
	}
	apiClient := api.NewClient(srv.URL)
	sess := auth.NewSession(store, apiClient)
	sess.Hydrate()
	return New(apiClient, sess)
}

// newAnonClient wires a backend client with no session.
func newAnonClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	store := auth.NewStore(&config.Config{Dir: t.TempDir()})
	apiClient := api.NewClient(srv.URL)
	sess := auth.NewSession(store, apiClient)
	sess.Hydrate()
	return New(apiClient, sess)
}

func TestListTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/u1/tasks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"tasks":[{"id":"t1","title":"Buy milk","is_completed":false},{"id":"t2","title":"Buy eggs","is_completed":true}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "t1" || tasks[1].Completed != true {
		t.Errorf("unexpected tasks %+v", tasks)
	}
}

func TestCreateTask(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/u1/tasks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &body)
		w.Write([]byte(`{"id":"t1","title":"Buy milk","description":"2%","is_completed":false}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	task, err := c.CreateTask(context.Background(), "Buy milk", "2%")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.ID != "t1" {
		t.Errorf("expected canonical task, got %+v", task)
	}
	if body["title"] != "Buy milk" || body["description"] != "2%" {
		t.Errorf("unexpected request body %v", body)
	}
}

func TestCreateTask_EmptyDescriptionOmitted(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":"t1","title":"Buy milk"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	if _, err := c.CreateTask(context.Background(), "Buy milk", ""); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	var body map[string]any
	json.Unmarshal(raw, &body)
	if _, present := body["description"]; present {
		t.Errorf("empty description should be omitted, body was %s", raw)
	}
}

func TestUpdateTask_CompletionOnlyUsesToggleEndpoint(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":"t1","title":"Buy milk","is_completed":true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	completed := true
	task, err := c.UpdateTask(context.Background(), "t1", service.TaskUpdate{Completed: &completed})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/api/u1/tasks/t1/complete" {
		t.Errorf("expected PATCH /api/u1/tasks/t1/complete, got %s %s", gotMethod, gotPath)
	}
	if len(gotBody) != 0 {
		t.Errorf("toggle request must carry no body, got %q", gotBody)
	}
	if !task.Completed {
		t.Errorf("expected completed task back, got %+v", task)
	}
}

func TestUpdateTask_GeneralUsesPut(t *testing.T) {
	var gotMethod, gotPath string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &body)
		w.Write([]byte(`{"id":"t1","title":"Buy oat milk","is_completed":false}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	title := "Buy oat milk"
	desc := "oat"
	task, err := c.UpdateTask(context.Background(), "t1", service.TaskUpdate{Title: &title, Description: &desc})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/u1/tasks/t1" {
		t.Errorf("expected PUT /api/u1/tasks/t1, got %s %s", gotMethod, gotPath)
	}
	if body["title"] != "Buy oat milk" || body["description"] != "oat" {
		t.Errorf("unexpected body %v", body)
	}
	if task.Title != "Buy oat milk" {
		t.Errorf("expected canonical task, got %+v", task)
	}
}

func TestUpdateTask_GeneralWithoutTitleFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued")
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	desc := "only description"
	_, err := c.UpdateTask(context.Background(), "t1", service.TaskUpdate{Description: &desc})
	if err == nil {
		t.Fatal("expected error for a title-less general update")
	}
	if err.Error() != "update requires the full title" {
		t.Errorf("unexpected error %q", err.Error())
	}
}

func TestDeleteTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/u1/tasks/t1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"message":"Task deleted successfully"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	msg, err := c.DeleteTask(context.Background(), "t1")
	if err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if msg != "Task deleted successfully" {
		t.Errorf("expected server message, got %q", msg)
	}
}

func TestSendMessage_NewConversationSendsNullID(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/u1/chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &body)
		w.Write([]byte(`{"conversation_id":"c1","response":"Added it.","tool_calls":[{"tool_name":"create_task","parameters":{"title":"Buy milk"},"result":"ok","success":true}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	reply, err := c.SendMessage(context.Background(), "add buy milk", "")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if id, present := body["conversation_id"]; !present || id != nil {
		t.Errorf("expected explicit null conversation_id, body was %v", body)
	}
	if reply.ConversationID != "c1" {
		t.Errorf("expected adopted id c1, got %q", reply.ConversationID)
	}
	if len(reply.ToolCalls) != 1 || reply.ToolCalls[0].ToolName != "create_task" || !reply.ToolCalls[0].Success {
		t.Errorf("unexpected tool calls %+v", reply.ToolCalls)
	}
}

func TestSendMessage_ExistingConversation(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &body)
		w.Write([]byte(`{"conversation_id":"c1","response":"Done.","tool_calls":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	if _, err := c.SendMessage(context.Background(), "thanks", "c1"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if body["conversation_id"] != "c1" {
		t.Errorf("expected conversation_id c1, got %v", body["conversation_id"])
	}
}

func TestListConversations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/u1/conversations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"conversations":[{"id":"c1","title":"Groceries","last_message":"Added it."}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	convs, err := c.ListConversations(context.Background())
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(convs) != 1 || convs[0].Title != "Groceries" {
		t.Errorf("unexpected conversations %+v", convs)
	}
}

func TestListMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/u1/conversations/c1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"conversation_id":"c1","messages":[{"id":"m1","role":"user","content":"hi"},{"id":"m2","role":"assistant","content":"hello"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	msgs, err := c.ListMessages(context.Background(), "c1")
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 2 || msgs[1].Role != service.RoleAssistant {
		t.Errorf("unexpected messages %+v", msgs)
	}
}

func TestAnonymousCallsFailBeforeNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued for an anonymous client")
	}))
	defer srv.Close()

	c := newAnonClient(t, srv)
	if _, err := c.ListTasks(context.Background()); !errors.Is(err, service.ErrNotAuthenticated) {
		t.Errorf("ListTasks: expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := c.CreateTask(context.Background(), "x", ""); !errors.Is(err, service.ErrNotAuthenticated) {
		t.Errorf("CreateTask: expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := c.SendMessage(context.Background(), "x", ""); !errors.Is(err, service.ErrNotAuthenticated) {
		t.Errorf("SendMessage: expected ErrNotAuthenticated, got %v", err)
	}
}
