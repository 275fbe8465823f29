package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskchat/internal/config"
	"taskchat/internal/exitcode"
	"taskchat/internal/service"
	"taskchat/internal/validate"
)

func init() {
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command.
type SignupCmd struct{}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return nil }
func (c *SignupCmd) Synopsis() string  { return "Create an account" }
func (c *SignupCmd) Usage() string     { return "taskchat signup <email> <password>" }
func (c *SignupCmd) NeedsAuth() bool   { return false }
func (c *SignupCmd) NeedsNetwork() bool { return true }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
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
	message, err := sess.SignUp(ctx, email, password)
	if err != nil {
		return reportError(cfg, errOut, err)
	}

	if !cfg.Quiet {
		if message == "" {
			message = "account created"
		}
		fmt.Fprintln(out, message)
		fmt.Fprintln(out, "run: taskchat signin")
	}
	return exitcode.Success
}
