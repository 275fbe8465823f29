package ui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"taskchat/internal/api"
	"taskchat/internal/service"
	"taskchat/internal/validate"
)

const glamourStyle = "dark"

// chatEntry is one displayed message. Entries appended optimistically
// carry a locally generated id and pending=true until the server
// confirms the send.
type chatEntry struct {
	id        string
	role      string
	content   string
	toolCalls []service.ToolCall
	pending   bool
}

type historyMsg struct {
	msgs []service.Message
	err  error
}

// sendResultMsg resolves one optimistic send. tempID names the exact
// entry to remove on failure.
type sendResultMsg struct {
	tempID string
	reply  service.ChatReply
	err    error
}

type copiedMsg struct {
	err error
}

type chatKeyMap struct {
	Send   key.Binding
	Copy   key.Binding
	PageUp key.Binding
	PageDn key.Binding
	Quit   key.Binding
}

func (k chatKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Copy, k.Quit}
}

func (k chatKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Send, k.Copy}, {k.PageUp, k.PageDn, k.Quit}}
}

func defaultChatKeys() chatKeyMap {
	return chatKeyMap{
		Send:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Copy:   key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy reply")),
		PageUp: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDn: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ChatModel is the interactive chat thread.
type ChatModel struct {
	svc service.Service

	conversationID string
	entries        []chatEntry

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     chatKeyMap
	renderer *glamour.TermRenderer

	sending      bool
	loading      bool
	status       string
	errText      string
	unauthorized bool
	ready        bool
	width        int
	height       int
}

// NewChat creates the chat model. A non-empty conversationID resumes an
// existing conversation; its history is loaded on startup.
func NewChat(svc service.Service, conversationID string) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask the task agent..."
	ti.Prompt = "> "
	ti.CharLimit = validate.MaxMessageLen
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points

	return ChatModel{
		svc:            svc,
		conversationID: conversationID,
		input:          ti,
		spinner:        sp,
		help:           help.New(),
		keys:           defaultChatKeys(),
		loading:        conversationID != "",
	}
}

// Unauthorized reports whether the session was rejected while the chat
// was open.
func (m ChatModel) Unauthorized() bool {
	return m.unauthorized
}

func (m ChatModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, textinput.Blink}
	if m.conversationID != "" {
		cmds = append(cmds, m.historyCmd())
	}
	return tea.Batch(cmds...)
}

func (m ChatModel) historyCmd() tea.Cmd {
	id := m.conversationID
	return func() tea.Msg {
		msgs, err := m.svc.ListMessages(context.Background(), id)
		return historyMsg{msgs: msgs, err: err}
	}
}

func (m ChatModel) sendCmd(text, tempID string) tea.Cmd {
	conversationID := m.conversationID
	return func() tea.Msg {
		reply, err := m.svc.SendMessage(context.Background(), text, conversationID)
		return sendResultMsg{tempID: tempID, reply: reply, err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - 4
		vpHeight := msg.Height - 6
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		if r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(glamourStyle),
			glamour.WithWordWrap(msg.Width-4),
		); err == nil {
			m.renderer = r
		}
		m.refreshViewport()
		return m, nil

	case historyMsg:
		m.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.entries = entriesFromHistory(msg.msgs)
		m.errText = ""
		m.refreshViewport()
		return m, nil

	case sendResultMsg:
		return m.resolveSend(msg)

	case copiedMsg:
		if msg.err != nil {
			m.errText = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied reply to clipboard"
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Send):
			return m.applySend()
		case key.Matches(msg, m.keys.Copy):
			if reply := m.lastAssistant(); reply != "" {
				return m, copyCmd(reply)
			}
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.HalfViewUp()
			return m, nil
		case key.Matches(msg, m.keys.PageDn):
			m.viewport.HalfViewDown()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applySend appends a temporary user message and issues the send. The
// entry stays pending until the server answers.
func (m ChatModel) applySend() (tea.Model, tea.Cmd) {
	if m.sending {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if err := validate.ChatMessage(text); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	tempID := uuid.NewString()
	m.entries = append(m.entries, chatEntry{
		id:      tempID,
		role:    service.RoleUser,
		content: text,
		pending: true,
	})
	m.input.SetValue("")
	m.sending = true
	m.status = "thinking..."
	m.errText = ""
	m.refreshViewport()
	return m, m.sendCmd(text, tempID)
}

// resolveSend reconciles an optimistic send: on success the temporary
// message is confirmed and the assistant reply appended; on failure
// exactly that one message is removed and the error surfaced.
func (m ChatModel) resolveSend(msg sendResultMsg) (tea.Model, tea.Cmd) {
	m.sending = false
	m.status = ""
	if msg.err != nil {
		m.entries = removeEntry(m.entries, msg.tempID)
		m.refreshViewport()
		return m.fail(msg.err)
	}

	for i := range m.entries {
		if m.entries[i].id == msg.tempID {
			m.entries[i].pending = false
			break
		}
	}
	m.entries = append(m.entries, chatEntry{
		id:        uuid.NewString(),
		role:      service.RoleAssistant,
		content:   msg.reply.Response,
		toolCalls: msg.reply.ToolCalls,
	})
	// Adopt the conversation id so a fresh thread becomes the active
	// conversation after its first exchange.
	m.conversationID = msg.reply.ConversationID
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func (m ChatModel) fail(err error) (tea.Model, tea.Cmd) {
	if api.IsUnauthorized(err) {
		m.unauthorized = true
		return m, tea.Quit
	}
	m.errText = err.Error()
	return m, nil
}

func (m ChatModel) lastAssistant() string {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].role == service.RoleAssistant {
			return m.entries[i].content
		}
	}
	return ""
}

func (m *ChatModel) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderEntries())
	m.viewport.GotoBottom()
}

func (m ChatModel) renderEntries() string {
	var b strings.Builder
	for _, e := range m.entries {
		switch e.role {
		case service.RoleUser:
			label := userLabelStyle.Render("You")
			if e.pending {
				label = pendingStyle.Render("You (sending...)")
			}
			b.WriteString(label + "\n" + e.content + "\n\n")
		default:
			b.WriteString(assistantLabelStyle.Render("Agent") + "\n")
			content := e.content
			if m.renderer != nil {
				if rendered, err := m.renderer.Render(e.content); err == nil {
					content = strings.TrimRight(rendered, "\n") + "\n"
				}
			}
			b.WriteString(content)
			for _, tc := range e.toolCalls {
				line := "  [tool] " + tc.ToolName
				if tc.Success {
					b.WriteString(toolOkStyle.Render(line+": ok") + "\n")
				} else {
					b.WriteString(toolFailStyle.Render(line+": failed") + "\n")
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m ChatModel) View() string {
	if !m.ready {
		return "loading..."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Chat"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	switch {
	case m.errText != "":
		b.WriteString(errStyle.Render(m.errText))
	case m.loading || m.sending:
		b.WriteString(m.spinner.View() + " " + statusStyle.Render(m.status))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// entriesFromHistory converts server messages into displayed entries.
func entriesFromHistory(msgs []service.Message) []chatEntry {
	entries := make([]chatEntry, 0, len(msgs))
	for _, msg := range msgs {
		entries = append(entries, chatEntry{
			id:        msg.ID,
			role:      msg.Role,
			content:   msg.Content,
			toolCalls: msg.ToolCalls,
		})
	}
	return entries
}

// removeEntry filters out exactly the entry with the given id.
func removeEntry(entries []chatEntry, id string) []chatEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.id != id {
			out = append(out, e)
		}
	}
	return out
}
