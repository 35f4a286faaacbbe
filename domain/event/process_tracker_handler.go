package event

import (
	"fmt"
	"log/slog"
	"roomcast/errors"

	"github.com/samber/lo"
)

// ProcessTrackerHandler logs the health snapshots produced by the health worker.
type ProcessTrackerHandler struct {
	log *slog.Logger
}

func NewProcessTrackerHandler(log *slog.Logger) *ProcessTrackerHandler {
	return &ProcessTrackerHandler{log: log}
}

func (h ProcessTrackerHandler) Handle(event Event) {
	switch event.Type {
	case ProcessUsageType:
		payload, ok := event.Payload.(ProcessUsage)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		h.log.Debug(fmt.Sprintf("[SERVER] | PID %d | CPU %.2f%% | RSS %d bytes",
			payload.PID, payload.Cpu, payload.Rss))
	case RoomOccupancyType:
		payload, ok := event.Payload.(RoomOccupancy)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		total := lo.Sum(lo.Values(payload.Members))
		h.log.Debug("Room occupancy", "rooms", len(payload.Members), "members", total)
	}
}
