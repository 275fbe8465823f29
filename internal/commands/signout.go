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
	Register(&SignoutCmd{})
}

// SignoutCmd implements the signout command. The remote call is
// best-effort; local session state is always cleared.
type SignoutCmd struct{}

func (c *SignoutCmd) Name() string       { return "signout" }
func (c *SignoutCmd) Aliases() []string  { return []string{"logout"} }
func (c *SignoutCmd) Synopsis() string   { return "Sign out and clear the stored session" }
func (c *SignoutCmd) Usage() string      { return "taskchat signout" }
func (c *SignoutCmd) NeedsAuth() bool    { return false }
func (c *SignoutCmd) NeedsNetwork() bool { return true }

func (c *SignoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SignoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	sess, _ := newSession(cfg, errOut)
	if !sess.Authenticated() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not signed in")
		}
		return exitcode.Success
	}

	sess.SignOut(ctx)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
