package event

import (
	"bytes"
	"log/slog"
	"roomcast/domain"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestWorkerRestartedAfterPanicHandler_Counts_Restarts(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	counter := NewCounter()
	handler := NewWorkerRestartedAfterPanicHandler(log, counter)

	// When two restarts and an unrelated event are handled
	handler.Handle(Event{Type: RestartedAfterPanicType, Payload: WorkerRestartedAfterPanic{WorkerName: "RoomRegistry"}})
	handler.Handle(Event{Type: RestartedAfterPanicType, Payload: WorkerRestartedAfterPanic{WorkerName: "RoomRegistry"}})
	handler.Handle(Event{Type: ChannelCapacityType, Payload: ChannelCapacity{}})

	// Then only restarts are counted
	req.Equal(2, counter.Get(RestartedAfterPanicType))
	req.Zero(counter.Get(ChannelCapacityType))
}

func TestHandlers_Ignore_Invalid_Payloads(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	counter := NewCounter()

	handlers := []Handler{
		NewChannelCapacityHandler(log, 10),
		NewWorkerRestartedAfterPanicHandler(log, counter),
		NewProcessTrackerHandler(log),
	}
	events := []Event{
		{Type: ChannelCapacityType, Payload: "wrong"},
		{Type: RestartedAfterPanicType, Payload: 42},
		{Type: ProcessUsageType, Payload: nil},
		{Type: RoomOccupancyType, Payload: struct{}{}},
	}

	req.NotPanics(func() {
		for _, h := range handlers {
			for _, e := range events {
				h.Handle(e)
			}
		}
	})
	req.Zero(counter.Get(RestartedAfterPanicType))
}

// capture returns a logger writing text records into the returned buffer.
func capture() (*slog.Logger, *bytes.Buffer) {
	var out bytes.Buffer
	return slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})), &out
}

func TestChannelCapacityHandler_Warns_Below_Threshold(t *testing.T) {
	t.Run("nearly full channel", func(t *testing.T) {
		req := require.New(t)
		log, out := capture()

		NewChannelCapacityHandler(log, 10).Handle(Event{Type: ChannelCapacityType,
			Payload: ChannelCapacity{ChannelName: "registry_commands", Capacity: 16, Length: 15}})

		req.Contains(out.String(), "level=WARN")
		req.Contains(out.String(), "Channel running out of capacity")
		req.Contains(out.String(), "channel=registry_commands")
		req.Contains(out.String(), "capacity_left=1")
	})

	t.Run("plenty of room left", func(t *testing.T) {
		req := require.New(t)
		log, out := capture()

		NewChannelCapacityHandler(log, 10).Handle(Event{Type: ChannelCapacityType,
			Payload: ChannelCapacity{ChannelName: "registry_commands", Capacity: 64, Length: 2}})

		req.NotContains(out.String(), "level=WARN")
		req.Contains(out.String(), "length=2")
	})

	t.Run("unbuffered channel", func(t *testing.T) {
		log, out := capture()

		NewChannelCapacityHandler(log, 10).Handle(Event{Type: ChannelCapacityType,
			Payload: ChannelCapacity{ChannelName: "unbuffered"}})

		require.Empty(t, out.String())
	})
}

func TestWorkerRestartedAfterPanicHandler_Logs_Running_Total(t *testing.T) {
	req := require.New(t)
	log, out := capture()
	handler := NewWorkerRestartedAfterPanicHandler(log, NewCounter())

	handler.Handle(Event{Type: RestartedAfterPanicType, Payload: WorkerRestartedAfterPanic{WorkerName: "RoomRegistry"}})
	handler.Handle(Event{Type: RestartedAfterPanicType, Payload: WorkerRestartedAfterPanic{WorkerName: "RoomRegistry"}})

	req.Contains(out.String(), "worker=RoomRegistry total=1")
	req.Contains(out.String(), "worker=RoomRegistry total=2")
}

func TestProcessTrackerHandler_Logs_Snapshots(t *testing.T) {
	req := require.New(t)
	log, out := capture()
	handler := NewProcessTrackerHandler(log)

	handler.Handle(Event{Type: ProcessUsageType, Payload: ProcessUsage{PID: 1, Cpu: 1.5, Rss: 1024}})
	handler.Handle(Event{Type: RoomOccupancyType,
		Payload: RoomOccupancy{Members: map[domain.RoomName]int{domain.DefaultRoom: 2, "Dev": 3}}})

	req.Contains(out.String(), "PID 1 | CPU 1.50% | RSS 1024 bytes")
	req.Contains(out.String(), "rooms=2 members=5")
}
