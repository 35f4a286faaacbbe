// Package runtime owns the room state and the bus used to reach it.
// Every room mutation happens on the registry goroutine, one command at a time.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"roomcast/contract"
	"roomcast/domain"
	"roomcast/domain/chat"
	"roomcast/domain/event"
	"roomcast/errors"
	"time"

	"github.com/samber/lo"
)

// Ensure *RoomRegistry implements the contract.Worker interface at compile time.
var _ contract.Worker = (*RoomRegistry)(nil)

// RoomRegistry is the single owner of every room.
// It is never shared: other components reach it through a Bus holding
// the send-end of its command channel.
type RoomRegistry struct {
	log             *slog.Logger
	rooms           map[domain.RoomName]*Room
	commands        <-chan chat.Command
	ids             contract.IDGenerator
	deliveryTimeout time.Duration
}

func NewRoomRegistry(log *slog.Logger, commands <-chan chat.Command,
	ids contract.IDGenerator, deliveryTimeout time.Duration) *RoomRegistry {
	return &RoomRegistry{
		log:             log,
		rooms:           make(map[domain.RoomName]*Room),
		commands:        commands,
		ids:             ids,
		deliveryTimeout: deliveryTimeout,
	}
}

// Run processes commands in arrival order until ctx is done or the channel is closed.
func (r *RoomRegistry) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.log.Debug("Stopping room registry")
			return ctx.Err()
		case cmd, ok := <-r.commands:
			if !ok {
				r.log.Debug("Channel is closed")
				return nil
			}
			if err := r.dispatch(ctx, cmd); err != nil {
				r.log.Error("Command rejected", "error", err)
			}
		}
	}
}

func (r *RoomRegistry) dispatch(ctx context.Context, cmd chat.Command) error {
	switch c := cmd.(type) {
	case chat.JoinRoomCommand:
		c.Reply <- r.join(ctx, c.Room, c.Name, c.Handle)
	case chat.LeaveRoomCommand:
		r.leave(c.Room, c.ID)
	case chat.ListRoomsCommand:
		c.Reply <- lo.Keys(r.rooms)
	case chat.SendMessageCommand:
		r.broadcast(ctx, c.Room, event.Message{Name: c.Name, Message: c.Text})
	case chat.RoomStatsCommand:
		c.Reply <- lo.MapValues(r.rooms, func(room *Room, _ domain.RoomName) int {
			return room.Len()
		})
	default:
		return fmt.Errorf("%w: %T", errors.ErrUnknownCommand, cmd)
	}
	return nil
}

func (r *RoomRegistry) join(ctx context.Context, name domain.RoomName,
	displayName *string, handle contract.ClientHandle) domain.MemberID {
	id := r.addMember(name, handle)
	r.log.Debug("Member joined", "room", name, "member_id", id)
	r.broadcast(ctx, name, event.Joined{Room: name, Name: domain.DisplayName(displayName)})
	return id
}

// addMember draws a fresh id for handle, creating the room when it is unknown.
// A brand-new room is empty, so its first id needs no collision check.
func (r *RoomRegistry) addMember(name domain.RoomName, handle contract.ClientHandle) domain.MemberID {
	id := r.ids.Next()
	room, ok := r.rooms[name]
	if !ok {
		room = newRoom()
		r.rooms[name] = room
		room.Add(id, handle)
		return id
	}
	for room.Has(id) {
		id = r.ids.Next()
	}
	room.Add(id, handle)
	return id
}

func (r *RoomRegistry) leave(name domain.RoomName, id domain.MemberID) {
	room, ok := r.rooms[name]
	if !ok {
		return
	}
	room.Remove(id)
	r.log.Debug("Member left", "room", name, "member_id", id)
}

// broadcast detaches the whole membership of the room, tries every member once
// and puts back only those whose delivery succeeded.
// Empty rooms are kept and an unknown room is a no-op.
func (r *RoomRegistry) broadcast(ctx context.Context, name domain.RoomName, evt event.Outbound) {
	room, ok := r.rooms[name]
	if !ok {
		return
	}
	for id, handle := range room.detach() {
		if err := r.deliver(ctx, handle, evt); err != nil {
			r.log.Debug("Pruning member", "room", name, "member_id", id, "error", err)
			continue
		}
		room.Add(id, handle)
	}
}

// deliver bounds one delivery by deliveryTimeout.
// A panicking handle counts as a failed delivery, so the rest of the
// detached membership is still put back and pending replies still go out.
func (r *RoomRegistry) deliver(ctx context.Context, handle contract.ClientHandle, evt event.Outbound) (err error) {
	deliveryCtx, cancel := context.WithTimeout(ctx, r.deliveryTimeout)
	defer cancel()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", errors.ErrHandlePanic, p)
		}
	}()
	return handle.Deliver(deliveryCtx, evt)
}
