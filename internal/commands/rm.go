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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "taskchat rm <n>" }
func (c *RmCmd) NeedsAuth() bool    { return true }
func (c *RmCmd) NeedsNetwork() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
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

	message, err := svc.DeleteTask(ctx, task.ID)
	if err != nil {
		return reportError(cfg, errOut, err)
	}

	if !cfg.Quiet {
		if message == "" {
			message = "ok"
		}
		fmt.Fprintln(out, message)
	}
	return exitcode.Success
}
