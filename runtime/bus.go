package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"roomcast/contract"
	"roomcast/domain"
	"roomcast/domain/chat"
	"roomcast/errors"
	"time"
)

var _ contract.IBus = (*Bus)(nil)

// Bus holds the send-end of the registry command channel.
// It is safe for concurrent use by any number of sessions.
type Bus struct {
	log            *slog.Logger
	commands       chan<- chat.Command
	publishTimeout time.Duration
}

func NewBus(log *slog.Logger, commands chan<- chat.Command, publishTimeout time.Duration) *Bus {
	return &Bus{log: log, commands: commands, publishTimeout: publishTimeout}
}

func (b *Bus) Join(ctx context.Context, room domain.RoomName, name *string,
	handle contract.ClientHandle) (domain.MemberID, error) {
	reply := make(chan domain.MemberID, 1)
	cmd := chat.JoinRoomCommand{Room: room, Name: name, Handle: handle, Reply: reply}
	if err := b.request(ctx, cmd); err != nil {
		return 0, err
	}
	return await(ctx, reply)
}

func (b *Bus) Leave(ctx context.Context, room domain.RoomName, id domain.MemberID) {
	b.publish(ctx, chat.LeaveRoomCommand{Room: room, ID: id})
}

func (b *Bus) List(ctx context.Context) ([]domain.RoomName, error) {
	reply := make(chan []domain.RoomName, 1)
	if err := b.request(ctx, chat.ListRoomsCommand{Reply: reply}); err != nil {
		return nil, err
	}
	return await(ctx, reply)
}

func (b *Bus) Send(ctx context.Context, room domain.RoomName, id domain.MemberID, name, text string) {
	b.publish(ctx, chat.SendMessageCommand{Room: room, ID: id, Name: name, Text: text})
}

func (b *Bus) Stats(ctx context.Context) (map[domain.RoomName]int, error) {
	reply := make(chan map[domain.RoomName]int, 1)
	if err := b.request(ctx, chat.RoomStatsCommand{Reply: reply}); err != nil {
		return nil, err
	}
	return await(ctx, reply)
}

// publish never reports back to the caller.
// When the registry lags behind for longer than publishTimeout the command is dropped.
func (b *Bus) publish(ctx context.Context, cmd chat.Command) {
	timer := time.NewTimer(b.publishTimeout)
	defer timer.Stop()
	select {
	case b.commands <- cmd:
	case <-ctx.Done():
		b.log.Debug(fmt.Sprintf("Context done, dropping %T", cmd))
	case <-timer.C:
		b.log.Warn(fmt.Sprintf("Registry command channel full, dropping %T", cmd))
	}
}

// request waits for the registry to accept cmd; there is no timeout besides ctx.
func (b *Bus) request(ctx context.Context, cmd chat.Command) error {
	select {
	case b.commands <- cmd:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", errors.ErrRegistryStopped, ctx.Err())
	}
}

func await[T any](ctx context.Context, reply <-chan T) (T, error) {
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w: %w", errors.ErrRegistryStopped, ctx.Err())
	}
}
