// Package main is the entry point for the taskchat CLI.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"taskchat/internal/api"
	"taskchat/internal/auth"
	"taskchat/internal/backend/rest"
	"taskchat/internal/cli"
	"taskchat/internal/commands"
	"taskchat/internal/config"
	"taskchat/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create service factory: hydrate the stored session and bind the
	// REST backend to it.
	factory := func(ctx context.Context, cfg *config.Config, errOut io.Writer) (service.Service, error) {
		client := api.NewClient(cfg.BaseURL)
		if cfg.Debug {
			client.Debug = errOut
		}
		sess := auth.NewSession(auth.NewStore(cfg), client)
		sess.Hydrate()
		if !sess.Authenticated() {
			return nil, service.ErrNotAuthenticated
		}
		return rest.New(client, sess), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
