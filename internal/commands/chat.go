package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskchat/internal/auth"
	"taskchat/internal/config"
	"taskchat/internal/exitcode"
	"taskchat/internal/output"
	"taskchat/internal/service"
	"taskchat/internal/ui"
	"taskchat/internal/validate"
)

func init() {
	Register(&ChatCmd{})
}

// ChatCmd sends a message to the AI agent. With arguments it is a
// one-shot send; without, it opens the interactive chat thread.
type ChatCmd struct {
	conversationID string
}

// SetConversationID sets the conversation id (for testing).
func (c *ChatCmd) SetConversationID(id string) {
	c.conversationID = id
}

func (c *ChatCmd) Name() string       { return "chat" }
func (c *ChatCmd) Aliases() []string  { return nil }
func (c *ChatCmd) Synopsis() string   { return "Chat with the task agent" }
func (c *ChatCmd) Usage() string      { return "taskchat chat [--conversation <id>] [message...]" }
func (c *ChatCmd) NeedsAuth() bool    { return true }
func (c *ChatCmd) NeedsNetwork() bool { return true }

func (c *ChatCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.conversationID, "conversation", "", "")
	fs.StringVar(&c.conversationID, "c", "", "")
}

func (c *ChatCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return c.runInteractive(ctx, cfg, svc, errOut)
	}

	message := strings.TrimSpace(strings.Join(args, " "))
	if err := validate.ChatMessage(message); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	reply, err := svc.SendMessage(ctx, message, c.conversationID)
	if err != nil {
		return reportError(cfg, errOut, err)
	}

	fmt.Fprintln(out, reply.Response)
	for _, tc := range reply.ToolCalls {
		output.FormatToolCall(out, tc)
	}
	if !cfg.Quiet && c.conversationID == "" {
		fmt.Fprintf(out, "conversation: %s\n", reply.ConversationID)
	}
	return exitcode.Success
}

func (c *ChatCmd) runInteractive(ctx context.Context, cfg *config.Config, svc service.Service, errOut io.Writer) int {
	model := ui.NewChat(svc, c.conversationID)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	if m, ok := final.(ui.ChatModel); ok && m.Unauthorized() {
		auth.NewStore(cfg).Clear()
		fmt.Fprintln(errOut, "error: session expired (run: taskchat signin)")
		return exitcode.AuthError
	}
	return exitcode.Success
}
