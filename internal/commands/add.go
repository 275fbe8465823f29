package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskchat/internal/config"
	"taskchat/internal/exitcode"
	"taskchat/internal/service"
	"taskchat/internal/validate"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(d string) {
	c.description = d
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "taskchat add [--desc <text>] <title...>" }
func (c *AddCmd) NeedsAuth() bool    { return true }
func (c *AddCmd) NeedsNetwork() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if err := validate.TaskTitle(title); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := validate.TaskDescription(c.description); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := svc.CreateTask(ctx, title, c.description)
	if err != nil {
		return reportError(cfg, errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created: %s\n", task.Title)
	}
	return exitcode.Success
}
