//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"roomcast/domain"
	"roomcast/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// ClientHandle is the delivery capability of exactly one session.
// A non-nil error from Deliver means the handle is dead and must be dropped.
type ClientHandle interface {
	Deliver(ctx context.Context, e event.Outbound) error
}

// IDGenerator draws membership id candidates. Uniqueness is enforced by the registry.
type IDGenerator interface {
	Next() domain.MemberID
}

// IBus is the only way to reach the room registry.
// Leave and Send are fire-and-forget, Join, List and Stats wait for exactly one reply.
type IBus interface {
	Join(ctx context.Context, room domain.RoomName, name *string, handle ClientHandle) (domain.MemberID, error)
	Leave(ctx context.Context, room domain.RoomName, id domain.MemberID)
	List(ctx context.Context) ([]domain.RoomName, error)
	Send(ctx context.Context, room domain.RoomName, id domain.MemberID, name, text string)
	Stats(ctx context.Context) (map[domain.RoomName]int, error)
}
