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
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the signed-in identity as confirmed by the server.
type WhoamiCmd struct {
	local bool
}

func (c *WhoamiCmd) Name() string       { return "whoami" }
func (c *WhoamiCmd) Aliases() []string  { return nil }
func (c *WhoamiCmd) Synopsis() string   { return "Show the signed-in user" }
func (c *WhoamiCmd) Usage() string      { return "taskchat whoami [--local]" }
func (c *WhoamiCmd) NeedsAuth() bool    { return false }
func (c *WhoamiCmd) NeedsNetwork() bool { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.local, "local", false, "")
}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	sess, _ := newSession(cfg, errOut)
	user, ok := sess.User()
	if !ok {
		fmt.Fprintln(errOut, "error: not signed in (run: taskchat signin)")
		return exitcode.AuthError
	}

	if !c.local {
		remote, err := sess.CurrentUser(ctx)
		if err != nil {
			return reportError(cfg, errOut, err)
		}
		user = remote
	}

	fmt.Fprintf(out, "%s (%s)\n", user.Email, user.ID)
	return exitcode.Success
}
