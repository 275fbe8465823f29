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
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskchat` (no args) and `taskchat list`.
type ListCmd struct {
	openOnly bool
}

// SetOpenOnly sets the open-only filter (for testing).
func (c *ListCmd) SetOpenOnly(v bool) {
	c.openOnly = v
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskchat list [--open]" }
func (c *ListCmd) NeedsAuth() bool    { return true }
func (c *ListCmd) NeedsNetwork() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.openOnly, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 0 {
		fmt.Fprintln(errOut, "error: list takes no arguments")
		return exitcode.UserError
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportError(cfg, errOut, err)
	}

	// Numbering stays aligned with the full list so task refs used by
	// done/edit/rm are stable regardless of the filter.
	printed := 0
	for i, task := range tasks {
		if c.openOnly && task.Completed {
			continue
		}
		output.FormatTask(out, i+1, task)
		printed++
	}

	if printed == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
