package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"taskchat/internal/auth"
	"taskchat/internal/config"
	"taskchat/internal/exitcode"
	"taskchat/internal/service"
	"taskchat/internal/ui"
)

func init() {
	Register(&DashboardCmd{})
}

// DashboardCmd opens the interactive task dashboard.
type DashboardCmd struct{}

func (c *DashboardCmd) Name() string       { return "ui" }
func (c *DashboardCmd) Aliases() []string  { return []string{"dashboard"} }
func (c *DashboardCmd) Synopsis() string   { return "Open the interactive task dashboard" }
func (c *DashboardCmd) Usage() string      { return "taskchat ui" }
func (c *DashboardCmd) NeedsAuth() bool    { return true }
func (c *DashboardCmd) NeedsNetwork() bool { return true }

func (c *DashboardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DashboardCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	model := ui.NewDashboard(svc)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	if m, ok := final.(ui.DashboardModel); ok && m.Unauthorized() {
		auth.NewStore(cfg).Clear()
		fmt.Fprintln(errOut, "error: session expired (run: taskchat signin)")
		return exitcode.AuthError
	}
	return exitcode.Success
}
