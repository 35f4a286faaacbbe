package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"roomcast/client"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Load configuration from environment variables.
	var config client.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Connect to the chat server.
	c, err := client.Dial(ctx, log, config.ServerAddress, os.Stdout)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		log.Info("Closing connection...")
		_ = c.Close()
	}()

	if config.Name != "" {
		if err := c.Send("/name " + config.Name); err != nil {
			return exitRuntime, err
		}
	}
	log.Info(fmt.Sprintf(">>> Connected to %s (Ctrl+C to quit)", config.ServerAddress))

	// 4. Pump stdin and server frames until one side stops.
	if err := c.Run(ctx, os.Stdin); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}
