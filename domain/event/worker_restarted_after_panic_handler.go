package event

import (
	"log/slog"
	"roomcast/errors"
)

// WorkerRestartedAfterPanicHandler keeps a running count of supervisor restarts.
type WorkerRestartedAfterPanicHandler struct {
	log      *slog.Logger
	restarts *Counter
}

func NewWorkerRestartedAfterPanicHandler(log *slog.Logger, counter *Counter) *WorkerRestartedAfterPanicHandler {
	return &WorkerRestartedAfterPanicHandler{log: log, restarts: counter}
}

func (h *WorkerRestartedAfterPanicHandler) Handle(e Event) {
	if e.Type != RestartedAfterPanicType {
		return
	}
	restart, ok := e.Payload.(WorkerRestartedAfterPanic)
	if !ok {
		h.log.Error(errors.ErrInvalidPayload.Error(), "type", e.Type)
		return
	}
	h.restarts.Increment(RestartedAfterPanicType)
	h.log.Warn("Worker restarted after panic",
		"worker", restart.WorkerName, "total", h.restarts.Get(RestartedAfterPanicType))
}
