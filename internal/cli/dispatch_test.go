package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"taskchat/internal/cli"
	"taskchat/internal/commands"
	"taskchat/internal/config"
	"taskchat/internal/exitcode"
	"taskchat/internal/service"
	"taskchat/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, errOut io.Writer) (service.Service, error) {
		return svc, nil
	}
}

// isolate keeps dispatch tests away from the real config dir and the
// base-URL fallback warning.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvAPIURL, "http://unused")
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	if stdout.String() != "   1  [ ] Buy milk\n" {
		t.Errorf("expected task line, got %q", stdout.String())
	}
}

func TestDispatcher_Alias(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.AddTask("t1", "Buy milk")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"ls"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	if stdout.String() != "   1  [ ] Buy milk\n" {
		t.Errorf("expected task line, got %q", stdout.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("Usage:")) {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if stdout.String() != "taskchat 0.1.0\n" {
		t.Errorf("expected 'taskchat 0.1.0\\n', got %q", stdout.String())
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--unknown"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -config\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_NotSignedIn(t *testing.T) {
	isolate(t)
	factory := func(ctx context.Context, cfg *config.Config, errOut io.Writer) (service.Service, error) {
		return nil, service.ErrNotAuthenticated
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list"}, &stdout, &stderr)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	expected := "error: not signed in (run: taskchat signin)\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FactoryFailure(t *testing.T) {
	isolate(t)
	factory := func(ctx context.Context, cfg *config.Config, errOut io.Writer) (service.Service, error) {
		return nil, errors.New("boom")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list"}, &stdout, &stderr)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	expected := "error: backend error: boom\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_BaseURLFallbackWarning(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvAPIURL, "")
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "warning: TASKCHAT_API_URL not set, using http://localhost:8000\n"
	if stderr.String() != expected {
		t.Errorf("expected fallback warning, got %q", stderr.String())
	}
}

func TestDispatcher_NoWarningForOfflineCommands(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvAPIURL, "")
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	dispatcher.Run(context.Background(), []string{"version"}, &stdout, &stderr)

	if stderr.String() != "" {
		t.Errorf("offline command should not warn about the base URL, got %q", stderr.String())
	}
}
