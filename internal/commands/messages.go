package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"taskchat/internal/config"
	"taskchat/internal/exitcode"
	"taskchat/internal/output"
	"taskchat/internal/service"
)

func init() {
	Register(&MessagesCmd{})
}

// MessagesCmd prints the messages of one conversation. The argument is
// either a conversation id or a 1-based number from `conversations`.
type MessagesCmd struct{}

func (c *MessagesCmd) Name() string       { return "messages" }
func (c *MessagesCmd) Aliases() []string  { return []string{"msgs"} }
func (c *MessagesCmd) Synopsis() string   { return "Show a conversation's messages" }
func (c *MessagesCmd) Usage() string      { return "taskchat messages <n|conversation-id>" }
func (c *MessagesCmd) NeedsAuth() bool    { return true }
func (c *MessagesCmd) NeedsNetwork() bool { return true }

func (c *MessagesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MessagesCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: conversation required")
		return exitcode.UserError
	}

	conversationID := args[0]
	if num, err := strconv.Atoi(conversationID); err == nil {
		convs, err := svc.ListConversations(ctx)
		if err != nil {
			return reportError(cfg, errOut, err)
		}
		if num < 1 || num > len(convs) {
			fmt.Fprintf(errOut, "error: conversation number out of range: %d\n", num)
			return exitcode.UserError
		}
		conversationID = convs[num-1].ID
	}

	msgs, err := svc.ListMessages(ctx, conversationID)
	if err != nil {
		return reportError(cfg, errOut, err)
	}

	if len(msgs) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no messages")
		return exitcode.Success
	}
	for _, msg := range msgs {
		output.FormatMessage(out, msg)
	}
	return exitcode.Success
}
