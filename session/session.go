// Package session holds the per-connection state machine sitting between
// the wire protocol and the room registry.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"roomcast/domain"
	"roomcast/domain/event"
	"roomcast/errors"
	"roomcast/services"
	"roomcast/sink"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Inbound is a decoded wire command.
type Inbound interface {
	isInbound()
}

// SendText asks for Message to be broadcast to the current room.
type SendText struct{ Message string }

// JoinRoom moves the session to Room.
type JoinRoom struct{ Room domain.RoomName }

// ChangeName sets the display name used from now on.
type ChangeName struct{ Name string }

// ListRooms asks for every known room name.
type ListRooms struct{}

func (SendText) isInbound()   {}
func (JoinRoom) isInbound()   {}
func (ChangeName) isInbound() {}
func (ListRooms) isInbound()  {}

// Session is owned by a single connection goroutine.
// Commands are handled one at a time, and a Join blocks until the registry
// answered, so room and memberID are never stale when a message is sent.
type Session struct {
	ID          string
	log         *slog.Logger
	chat        services.IChatService
	sink        *sink.ConnectionSink
	defaultRoom domain.RoomName

	room     domain.RoomName
	memberID domain.MemberID
	name     *string
	joined   bool
}

func NewSession(log *slog.Logger, chat services.IChatService,
	sink *sink.ConnectionSink, defaultRoom domain.RoomName) *Session {
	id := uuid.NewString()
	return &Session{
		ID:          id,
		log:         log.With("session_id", id),
		chat:        chat,
		sink:        sink,
		defaultRoom: defaultRoom,
	}
}

// Start joins the default room.
func (s *Session) Start(ctx context.Context) error {
	return s.join(ctx, s.defaultRoom)
}

// Handle translates one inbound command into registry operations.
func (s *Session) Handle(ctx context.Context, in Inbound) error {
	switch cmd := in.(type) {
	case SendText:
		if !s.joined {
			return nil
		}
		s.chat.SendMessage(ctx, s.room, s.memberID, s.DisplayName(), cmd.Message)
	case JoinRoom:
		return s.join(ctx, cmd.Room)
	case ChangeName:
		s.name = lo.ToPtr(cmd.Name)
		return s.sink.Deliver(ctx, event.NameChange{Name: cmd.Name})
	case ListRooms:
		rooms, err := s.chat.ListRooms(ctx)
		if err != nil {
			return fmt.Errorf("list rooms: %w", err)
		}
		return s.sink.Deliver(ctx, event.RoomList{Rooms: rooms})
	default:
		return fmt.Errorf("%w: %T", errors.ErrUnknownCommand, in)
	}
	return nil
}

// Stop leaves the current room. It does not wait for the registry.
func (s *Session) Stop(ctx context.Context) {
	if s.joined {
		s.chat.LeaveRoom(ctx, s.room, s.memberID)
	}
	s.log.Info("Session closed", "name", s.DisplayName(), "member_id", s.memberID, "room", s.room)
}

// join leaves the current room first, then waits for the new membership id.
// On failure the session is left without a room and drops messages until the next join.
func (s *Session) join(ctx context.Context, room domain.RoomName) error {
	if s.joined {
		s.chat.LeaveRoom(ctx, s.room, s.memberID)
	}
	id, err := s.chat.JoinRoom(ctx, room, s.name, s.sink)
	if err != nil {
		s.joined = false
		return fmt.Errorf("join room %s: %w", room, err)
	}
	s.room, s.memberID, s.joined = room, id, true
	s.log.Debug("Joined room", "room", room, "member_id", id)
	return nil
}

func (s *Session) DisplayName() string {
	return domain.DisplayName(s.name)
}

func (s *Session) Room() domain.RoomName {
	return s.room
}

func (s *Session) MemberID() domain.MemberID {
	return s.memberID
}
