package errors

import "fmt"

var (
	ErrWorkerPanic     = fmt.Errorf("worker panic")
	ErrInvalidPayload  = fmt.Errorf("invalid telemetry payload")
	ErrHandleClosed    = fmt.Errorf("client handle closed")
	ErrDeliveryTimeout = fmt.Errorf("client handle delivery timed out")
	ErrHandlePanic     = fmt.Errorf("client handle panicked")
	ErrRegistryStopped = fmt.Errorf("room registry did not answer")
	ErrUnknownCommand  = fmt.Errorf("unknown command")
	ErrUnknownEvent    = fmt.Errorf("unknown outbound event")
	ErrUndecodable     = fmt.Errorf("undecodable payload")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")
)
