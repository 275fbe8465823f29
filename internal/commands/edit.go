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
	"taskchat/internal/validate"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd updates a task's title and description. The general update
// endpoint requires the full title, so the new title is taken from the
// arguments rather than merged server-side.
type EditCmd struct {
	description string
	keepDesc    bool
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return nil }
func (c *EditCmd) Synopsis() string   { return "Update a task's title and description" }
func (c *EditCmd) Usage() string      { return "taskchat edit [--desc <text>|--keep-desc] <n> <title...>" }
func (c *EditCmd) NeedsAuth() bool    { return true }
func (c *EditCmd) NeedsNetwork() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.BoolVar(&c.keepDesc, "keep-desc", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task number and title required")
		return exitcode.UserError
	}
	num, err := strconv.Atoi(args[0])
	if err != nil || num < 1 {
		fmt.Fprintf(errOut, "error: invalid task number: %s\n", args[0])
		return exitcode.UserError
	}

	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if err := validate.TaskTitle(title); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := validate.TaskDescription(c.description); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
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

	description := c.description
	if c.keepDesc {
		description = task.Description
	}

	upd := service.TaskUpdate{Title: &title}
	if description != "" {
		upd.Description = &description
	}
	updated, err := svc.UpdateTask(ctx, task.ID, upd)
	if err != nil {
		return reportError(cfg, errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "updated: %s\n", updated.Title)
	}
	return exitcode.Success
}
