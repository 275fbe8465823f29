package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskchat/internal/config"
	"taskchat/internal/exitcode"
	"taskchat/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd toggles a task's completion flag. Routes through the
// dedicated toggle endpoint (completion-only partial update).
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string   { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string      { return "taskchat done <n>" }
func (c *DoneCmd) NeedsAuth() bool    { return true }
func (c *DoneCmd) NeedsNetwork() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task number required")
		return exitcode.UserError
	}
	num, err := strconv.Atoi(args[0])
	if err != nil || num < 1 {
		fmt.Fprintf(errOut, "error: invalid task number: %s\n", args[0])
		return exitcode.UserError
	}

	task, err := findTaskByNumber(ctx, svc, num)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return reportError(cfg, errOut, err)
	}

	completed := !task.Completed
	updated, err := svc.UpdateTask(ctx, task.ID, service.TaskUpdate{Completed: &completed})
	if err != nil {
		return reportError(cfg, errOut, err)
	}

	if !cfg.Quiet {
		state := "open"
		if updated.Completed {
			state = "done"
		}
		fmt.Fprintf(out, "%s: %s\n", state, updated.Title)
	}
	return exitcode.Success
}
