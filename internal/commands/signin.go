package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskchat/internal/api"
	"taskchat/internal/config"
	"taskchat/internal/exitcode"
	"taskchat/internal/service"
	"taskchat/internal/validate"
)

func init() {
	Register(&SigninCmd{})
}

// SigninCmd implements the signin command.
type SigninCmd struct{}

func (c *SigninCmd) Name() string       { return "signin" }
func (c *SigninCmd) Aliases() []string  { return []string{"login"} }
func (c *SigninCmd) Synopsis() string   { return "Sign in and store the session" }
func (c *SigninCmd) Usage() string      { return "taskchat signin <email> <password>" }
func (c *SigninCmd) NeedsAuth() bool    { return false }
func (c *SigninCmd) NeedsNetwork() bool { return true }

func (c *SigninCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SigninCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	}
	email, password := args[0], args[1]

	if err := validate.Email(email); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := validate.Password(password); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	sess, _ := newSession(cfg, errOut)
	if err := sess.SignIn(ctx, email, password); err != nil {
		// A 401 here is bad credentials, not an expired session.
		if api.IsUnauthorized(err) {
			var apiErr *api.Error
			errors.As(err, &apiErr)
			fmt.Fprintf(errOut, "error: %s\n", apiErr.Message)
			return exitcode.AuthError
		}
		return reportError(cfg, errOut, err)
	}

	if !cfg.Quiet {
		user, _ := sess.User()
		fmt.Fprintf(out, "signed in as %s\n", user.Email)
	}
	return exitcode.Success
}
