package workers

import (
	"context"
	"log/slog"
	"os"
	"roomcast/contract"
	"roomcast/domain/event"
	"time"

	"github.com/shirou/gopsutil/process"
)

// HealthMonitoringWorker periodically reports the server process usage
// and the member count of every room.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	bus            contract.IBus
	telemetryChan  chan<- event.Event
	metricInterval time.Duration
}

func NewHealthMonitoringWorker(
	log *slog.Logger,
	bus contract.IBus,
	telemetryChan chan<- event.Event,
	metricInterval time.Duration,
) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{
		log:            log,
		bus:            bus,
		telemetryChan:  telemetryChan,
		metricInterval: metricInterval,
	}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health monitoring")
			return nil
		case <-ticker.C:
			if usage, err := selfUsage(p); err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
			} else {
				w.emit(event.ProcessUsageType, usage)
			}
			w.reportRooms(ctx)
		}
	}
}

// reportRooms asks the registry for its stats without letting a busy
// registry stall the ticker for more than one interval.
func (w *HealthMonitoringWorker) reportRooms(ctx context.Context) {
	statsCtx, cancel := context.WithTimeout(ctx, w.metricInterval)
	defer cancel()
	stats, err := w.bus.Stats(statsCtx)
	if err != nil {
		w.log.Debug("Room stats unavailable", "err", err)
		return
	}
	w.emit(event.RoomOccupancyType, event.RoomOccupancy{Members: stats})
}

func (w *HealthMonitoringWorker) emit(t event.Type, payload any) {
	select {
	case w.telemetryChan <- event.Event{Type: t, CreatedAt: time.Now().UTC(), Payload: payload}:
	default:
		w.log.Debug("Observability telemetry event lost")
	}
}

func selfUsage(p *process.Process) (event.ProcessUsage, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return event.ProcessUsage{}, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return event.ProcessUsage{}, err
	}
	return event.ProcessUsage{PID: p.Pid, Cpu: cpu, Rss: memInfo.RSS}, nil
}
