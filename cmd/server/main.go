package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"roomcast/domain"
	"roomcast/domain/event"
	"roomcast/infrastructure/ws"
	"roomcast/internal"
	"roomcast/runtime"
	"roomcast/runtime/workers"
	"roomcast/services"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and owns the lifecycle, so deferred cleanup
// always happens before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	// A missing .env file is fine, the environment alone is enough.
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Setup Supervision & Orchestration
	telemetryChan := make(chan event.Event, config.BufferSize)
	sup := workers.NewSupervisor(log, telemetryChan, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(
		log, sup, telemetryChan, runtime.NewIDGenerator(config.IDStrategy),
		config.BufferSize, config.DeliveryTimeout, config.PublishTimeout, config.MetricInterval,
		config.LowCapacityThreshold,
	)

	// 4. Start the registry and telemetry workers
	orchestratorDone := make(chan struct{})
	go func() {
		defer close(orchestratorDone)
		_ = orchestrator.Start(ctx)
	}()

	// 5. Websocket server, blocking until a signal arrives
	server := ws.NewServer(log, services.NewChatService(orchestrator.Bus()), ws.Options{
		ConnectionBufferSize: config.ConnectionBufferSize,
		DefaultRoom:          domain.RoomName(config.DefaultRoom),
		StaticDir:            config.StaticDir,
		WriteWait:            config.WsWriteWait,
		PongWait:             config.WsPongWait,
		MaxMessage:           config.WsMaxMessage,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run(ctx, config.Address())
	}()

	// 6. Wait for Stop or Error
	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		serveErr = <-errChan
	case serveErr = <-errChan:
	}

	// 7. Final Cleanup
	stop()
	orchestrator.Stop()
	<-orchestratorDone
	if serveErr != nil {
		return exitRuntime, fmt.Errorf("websocket server error: %w", serveErr)
	}
	log.Info("Program stopped cleanly")
	return exitOK, nil
}
