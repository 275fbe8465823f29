package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taskchat/internal/api"
	"taskchat/internal/auth"
	"taskchat/internal/config"
	"taskchat/internal/exitcode"
	"taskchat/internal/service"
)

// reportError prints an adapter error and returns the matching exit
// code. A 401 on any authenticated call forces a sign-out: the local
// session is cleared and the user is pointed back at signin.
func reportError(cfg *config.Config, errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrNotAuthenticated) {
		fmt.Fprintln(errOut, "error: not signed in (run: taskchat signin)")
		return exitcode.AuthError
	}
	if api.IsUnauthorized(err) {
		auth.NewStore(cfg).Clear()
		fmt.Fprintln(errOut, "error: session expired (run: taskchat signin)")
		return exitcode.AuthError
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintf(errOut, "error: %s\n", apiErr.Message)
		if apiErr.Status == 0 || apiErr.Status >= 500 {
			return exitcode.BackendError
		}
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.BackendError
}

// newSession builds a hydrated session over the configured base URL.
// Used by the auth commands, which manage the session themselves
// instead of going through the service factory.
func newSession(cfg *config.Config, errOut io.Writer) (*auth.Session, *api.Client) {
	client := api.NewClient(cfg.BaseURL)
	if cfg.Debug {
		client.Debug = errOut
	}
	sess := auth.NewSession(auth.NewStore(cfg), client)
	sess.Hydrate()
	return sess, client
}

// findTaskByNumber fetches the task list and picks the 1-based entry.
func findTaskByNumber(ctx context.Context, svc service.Service, num int) (service.Task, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return service.Task{}, err
	}
	if num < 1 || num > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}
