package runtime

import (
	"context"
	"log/slog"
	"roomcast/contract"
	"roomcast/domain/chat"
	"roomcast/domain/event"
	"roomcast/runtime/workers"
	"time"
)

const registryCommandsChannel = "registry_commands"

// Orchestrator assembles the registry, its bus and the telemetry workers,
// then hands all of them to the supervisor.
type Orchestrator struct {
	log                  *slog.Logger
	supervisor           contract.ISupervisor
	registry             *RoomRegistry
	bus                  *Bus
	commands             chan chat.Command
	telemetryChan        chan event.Event
	metricInterval       time.Duration
	lowCapacityThreshold int
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	telemetryChan chan event.Event, ids contract.IDGenerator,
	bufferSize int, deliveryTimeout, publishTimeout, metricInterval time.Duration,
	lowCapacityThreshold int) *Orchestrator {
	commands := make(chan chat.Command, bufferSize)
	return &Orchestrator{
		log:                  log,
		supervisor:           supervisor,
		registry:             NewRoomRegistry(log, commands, ids, deliveryTimeout),
		bus:                  NewBus(log, commands, publishTimeout),
		commands:             commands,
		telemetryChan:        telemetryChan,
		metricInterval:       metricInterval,
		lowCapacityThreshold: lowCapacityThreshold,
	}
}

// Bus is the handle every session uses to reach the registry.
func (o *Orchestrator) Bus() *Bus {
	return o.bus
}

// Start registers every worker and blocks until the supervisor stops.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.supervisor.Add(o.registry)
	o.supervisor.Add(o.prepareTelemetry()...)

	o.log.Info("Starting orchestrator and all supervised workers")
	o.supervisor.Run(ctx)
	return nil
}

func (o *Orchestrator) prepareTelemetry() []contract.Worker {
	handlers := []event.Handler{
		event.NewChannelCapacityHandler(o.log, o.lowCapacityThreshold),
		event.NewWorkerRestartedAfterPanicHandler(o.log, event.NewCounter()),
		event.NewProcessTrackerHandler(o.log),
	}
	channels := []workers.NamedChannel{{Name: registryCommandsChannel, Channel: o.commands}}
	return []contract.Worker{
		workers.NewTelemetryWorker(o.log, o.telemetryChan, handlers),
		workers.NewChannelCapacityWorker(o.log, channels, o.telemetryChan, o.metricInterval),
		workers.NewHealthMonitoringWorker(o.log, o.bus, o.telemetryChan, o.metricInterval),
	}
}

// Stop cancels the supervised context; workers return on their own.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
