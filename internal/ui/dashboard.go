package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"taskchat/internal/api"
	"taskchat/internal/service"
	"taskchat/internal/validate"
)

type mutationKind int

const (
	mutationCreate mutationKind = iota
	mutationToggle
	mutationDelete
)

type tasksLoadedMsg struct {
	tasks []service.Task
	err   error
}

// mutationMsg is the resolution of one optimistic mutation. snapshot is
// the list as it was before the local change, used for full rollback.
type mutationMsg struct {
	kind     mutationKind
	tempID   string
	task     service.Task
	message  string
	err      error
	snapshot []service.Task
}

type dashKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Add     key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k dashKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Refresh, k.Quit}
}

func (k dashKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Add, k.Toggle, k.Delete}, {k.Refresh, k.Quit}}
}

func defaultDashKeys() dashKeyMap {
	return dashKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// DashboardModel is the interactive task list.
type DashboardModel struct {
	svc service.Service

	tasks  []service.Task
	cursor int

	input   textinput.Model
	adding  bool
	spinner spinner.Model
	help    help.Model
	keys    dashKeyMap

	loading      bool
	status       string
	errText      string
	unauthorized bool
	width        int
	height       int
}

// NewDashboard creates the dashboard model.
func NewDashboard(svc service.Service) DashboardModel {
	ti := textinput.New()
	ti.Placeholder = "New task title..."
	ti.Prompt = "> "
	ti.CharLimit = validate.MaxTitleLen

	sp := spinner.New()
	sp.Spinner = spinner.Points

	return DashboardModel{
		svc:     svc,
		input:   ti,
		spinner: sp,
		help:    help.New(),
		keys:    defaultDashKeys(),
		loading: true,
	}
}

// Unauthorized reports whether the session was rejected while the
// dashboard was open. The invoking command forces a sign-out.
func (m DashboardModel) Unauthorized() bool {
	return m.unauthorized
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.svc.ListTasks(context.Background())
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m DashboardModel) createCmd(tempID, title string, snapshot []service.Task) tea.Cmd {
	return func() tea.Msg {
		task, err := m.svc.CreateTask(context.Background(), title, "")
		return mutationMsg{kind: mutationCreate, tempID: tempID, task: task, err: err, snapshot: snapshot}
	}
}

func (m DashboardModel) toggleCmd(id string, completed bool, snapshot []service.Task) tea.Cmd {
	return func() tea.Msg {
		task, err := m.svc.UpdateTask(context.Background(), id, service.TaskUpdate{Completed: &completed})
		return mutationMsg{kind: mutationToggle, task: task, err: err, snapshot: snapshot}
	}
}

func (m DashboardModel) deleteCmd(id string, snapshot []service.Task) tea.Cmd {
	return func() tea.Msg {
		message, err := m.svc.DeleteTask(context.Background(), id)
		return mutationMsg{kind: mutationDelete, message: message, err: err, snapshot: snapshot}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.tasks = msg.tasks
		m.errText = ""
		m.clampCursor()
		return m, nil

	case mutationMsg:
		return m.resolveMutation(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Add):
			m.adding = true
			m.input.SetValue("")
			return m, m.input.Focus()
		case key.Matches(msg, m.keys.Toggle):
			return m.applyToggle()
		case key.Matches(msg, m.keys.Delete):
			return m.applyDelete()
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m DashboardModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		if err := validate.TaskTitle(title); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		return m.applyCreate(title)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyCreate inserts a temporary record locally and issues the create.
func (m DashboardModel) applyCreate(title string) (tea.Model, tea.Cmd) {
	snapshot := snapshotTasks(m.tasks)
	tempID := uuid.NewString()
	m.tasks = append(m.tasks, service.Task{ID: tempID, Title: title})
	m.cursor = len(m.tasks) - 1
	m.status = "creating..."
	m.errText = ""
	return m, m.createCmd(tempID, title, snapshot)
}

// applyToggle flips completion locally and issues the toggle.
func (m DashboardModel) applyToggle() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return m, nil
	}
	snapshot := snapshotTasks(m.tasks)
	task := m.tasks[m.cursor]
	completed := !task.Completed
	task.Completed = completed
	m.tasks = replaceTask(m.tasks, task.ID, task)
	m.status = "updating..."
	m.errText = ""
	return m, m.toggleCmd(task.ID, completed, snapshot)
}

// applyDelete removes the record locally and issues the delete.
func (m DashboardModel) applyDelete() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return m, nil
	}
	snapshot := snapshotTasks(m.tasks)
	id := m.tasks[m.cursor].ID
	m.tasks = removeTask(m.tasks, id)
	m.clampCursor()
	m.status = "deleting..."
	m.errText = ""
	return m, m.deleteCmd(id, snapshot)
}

// resolveMutation reconciles an optimistic change with the server's
// answer: canonical record on success, full snapshot on failure.
func (m DashboardModel) resolveMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.tasks = msg.snapshot
		m.clampCursor()
		return m.fail(msg.err)
	}
	m.status = ""
	switch msg.kind {
	case mutationCreate:
		m.tasks = replaceTask(m.tasks, msg.tempID, msg.task)
	case mutationToggle:
		m.tasks = replaceTask(m.tasks, msg.task.ID, msg.task)
	case mutationDelete:
		m.status = msg.message
	}
	return m, nil
}

func (m DashboardModel) fail(err error) (tea.Model, tea.Cmd) {
	if api.IsUnauthorized(err) {
		m.unauthorized = true
		return m, tea.Quit
	}
	m.status = ""
	m.errText = err.Error()
	return m, nil
}

func (m *DashboardModel) clampCursor() {
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " loading...\n")
	} else if len(m.tasks) == 0 {
		b.WriteString(statusStyle.Render("no tasks - press a to add one") + "\n")
	}

	for i, task := range m.tasks {
		cursor := "  "
		if i == m.cursor && !m.adding {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if task.Completed {
			box = "[x]"
		}
		title := task.Title
		line := fmt.Sprintf("%s%s %s", cursor, box, title)
		switch {
		case task.CreatedAt.IsZero():
			// Optimistic record not yet confirmed by the server.
			line = pendingStyle.Render(line)
		case task.Completed:
			line = doneStyle.Render(line)
		}
		b.WriteString(line + "\n")
		if desc := strings.TrimSpace(task.Description); desc != "" && i == m.cursor {
			b.WriteString(descStyle.Render("      "+desc) + "\n")
		}
	}

	b.WriteString("\n")
	if m.adding {
		b.WriteString(m.input.View() + "\n")
	}
	if m.errText != "" {
		b.WriteString(errStyle.Render(m.errText) + "\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// snapshotTasks copies the list so a later rollback is unaffected by
// further local mutation.
func snapshotTasks(tasks []service.Task) []service.Task {
	snapshot := make([]service.Task, len(tasks))
	copy(snapshot, tasks)
	return snapshot
}

// replaceTask maps the entry with the given id to repl, leaving order
// untouched. No-op if the id is gone.
func replaceTask(tasks []service.Task, id string, repl service.Task) []service.Task {
	for i, t := range tasks {
		if t.ID == id {
			tasks[i] = repl
			break
		}
	}
	return tasks
}

// removeTask filters out the entry with the given id.
func removeTask(tasks []service.Task, id string) []service.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
