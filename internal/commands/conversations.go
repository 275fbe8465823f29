package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskchat/internal/config"
	"taskchat/internal/exitcode"
	"taskchat/internal/output"
	"taskchat/internal/service"
)

func init() {
	Register(&ConversationsCmd{})
}

// ConversationsCmd lists the user's chat conversations.
type ConversationsCmd struct{}

func (c *ConversationsCmd) Name() string       { return "conversations" }
func (c *ConversationsCmd) Aliases() []string  { return []string{"convs"} }
func (c *ConversationsCmd) Synopsis() string   { return "List chat conversations" }
func (c *ConversationsCmd) Usage() string      { return "taskchat conversations" }
func (c *ConversationsCmd) NeedsAuth() bool    { return true }
func (c *ConversationsCmd) NeedsNetwork() bool { return true }

func (c *ConversationsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConversationsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	convs, err := svc.ListConversations(ctx)
	if err != nil {
		return reportError(cfg, errOut, err)
	}

	if len(convs) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no conversations yet")
		}
		return exitcode.Success
	}

	for i, conv := range convs {
		output.FormatConversation(out, i+1, conv)
	}
	return exitcode.Success
}
