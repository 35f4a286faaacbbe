package ws

import (
	"encoding/json"
	"fmt"
	"roomcast/domain"
	"roomcast/domain/event"
	"roomcast/errors"
	"roomcast/session"
)

// incoming is the envelope of every client frame, tagged by "type".
// Pointers tell a missing field apart from an empty one.
type incoming struct {
	Type    string  `json:"type"`
	Message *string `json:"message"`
	Room    *string `json:"room"`
	Name    *string `json:"name"`
}

type outgoingMessage struct {
	Type    event.Kind `json:"type"`
	Name    string     `json:"name"`
	Message string     `json:"message"`
}

type outgoingJoined struct {
	Type event.Kind      `json:"type"`
	Room domain.RoomName `json:"room"`
	Name string          `json:"name"`
}

type outgoingNameChange struct {
	Type event.Kind `json:"type"`
	Name string     `json:"name"`
}

type outgoingList struct {
	Type  event.Kind        `json:"type"`
	Rooms []domain.RoomName `json:"rooms"`
}

// Decode turns a text frame into a session command.
// Unknown types and missing fields are reported as errors.ErrUndecodable.
func Decode(data []byte) (session.Inbound, error) {
	var in incoming
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrUndecodable, err)
	}
	switch in.Type {
	case "Message":
		if in.Message == nil {
			return nil, fmt.Errorf("%w: Message without message", errors.ErrUndecodable)
		}
		return session.SendText{Message: *in.Message}, nil
	case "Join":
		if in.Room == nil {
			return nil, fmt.Errorf("%w: Join without room", errors.ErrUndecodable)
		}
		return session.JoinRoom{Room: domain.RoomName(*in.Room)}, nil
	case "Name":
		if in.Name == nil {
			return nil, fmt.Errorf("%w: Name without name", errors.ErrUndecodable)
		}
		return session.ChangeName{Name: *in.Name}, nil
	case "List":
		return session.ListRooms{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", errors.ErrUndecodable, in.Type)
	}
}

// Encode renders an outbound event as a text frame.
func Encode(e event.Outbound) ([]byte, error) {
	switch evt := e.(type) {
	case event.Message:
		return json.Marshal(outgoingMessage{Type: evt.Kind(), Name: evt.Name, Message: evt.Message})
	case event.Joined:
		return json.Marshal(outgoingJoined{Type: evt.Kind(), Room: evt.Room, Name: evt.Name})
	case event.NameChange:
		return json.Marshal(outgoingNameChange{Type: evt.Kind(), Name: evt.Name})
	case event.RoomList:
		rooms := evt.Rooms
		if rooms == nil {
			rooms = []domain.RoomName{}
		}
		return json.Marshal(outgoingList{Type: evt.Kind(), Rooms: rooms})
	default:
		return nil, fmt.Errorf("%w: %T", errors.ErrUnknownEvent, e)
	}
}
