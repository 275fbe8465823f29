package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskchat/internal/config"
	"taskchat/internal/exitcode"
	"taskchat/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskchat help" }
func (c *HelpCmd) NeedsAuth() bool    { return false }
func (c *HelpCmd) NeedsNetwork() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskchat                                   List tasks
  taskchat list [common flags] [--open]      List tasks ([--open]: hide completed)
  taskchat add [common flags] [--desc <text>] <title...>
  taskchat done [common flags] <n>           Toggle completion of task n
  taskchat edit [common flags] [--desc <text>|--keep-desc] <n> <title...>
  taskchat rm [common flags] <n>             Delete task n
  taskchat ui [common flags]                 Interactive task dashboard
  taskchat chat [common flags] [--conversation <id>] [message...]
  taskchat conversations [common flags]      List chat conversations
  taskchat messages [common flags] <n|id>    Show a conversation's messages
  taskchat signup [common flags] <email> <password>
  taskchat signin [common flags] <email> <password>
  taskchat signout [common flags]
  taskchat whoami [common flags] [--local]
  taskchat help
  taskchat version

Common flags:
  --config <dir>    Override config directory
  --api-url <url>   Override API base URL (or set TASKCHAT_API_URL)
  --quiet           Suppress informational output
  --debug           Print request logs to stderr
`
