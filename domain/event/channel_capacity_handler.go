package event

import (
	"log/slog"
	"roomcast/errors"
)

// ChannelCapacityHandler warns when a sampled channel is close to full.
// For the registry command channel this means fire-and-forget commands
// are about to be dropped by the bus.
type ChannelCapacityHandler struct {
	log       *slog.Logger
	threshold int
}

func NewChannelCapacityHandler(log *slog.Logger, lowCapacityThreshold int) *ChannelCapacityHandler {
	return &ChannelCapacityHandler{log: log, threshold: lowCapacityThreshold}
}

func (h *ChannelCapacityHandler) Handle(e Event) {
	if e.Type != ChannelCapacityType {
		return
	}
	sample, ok := e.Payload.(ChannelCapacity)
	if !ok {
		h.log.Error(errors.ErrInvalidPayload.Error(), "type", e.Type)
		return
	}
	// Unbuffered channels have nothing to run out of.
	if sample.Capacity <= 0 {
		return
	}
	left := sample.Capacity - sample.Length
	if left > h.threshold {
		h.log.Debug("Channel usage", "channel", sample.ChannelName, "length", sample.Length, "capacity", sample.Capacity)
		return
	}
	h.log.Warn("Channel running out of capacity", "channel", sample.ChannelName, "capacity_left", left)
}
