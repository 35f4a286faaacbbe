package event

import "roomcast/domain"

// Kind is the wire tag of an outbound event.
type Kind string

const (
	MessageKind    Kind = "Message"
	JoinedKind     Kind = "Joined"
	NameChangeKind Kind = "NameChange"
	ListKind       Kind = "List"
)

// Outbound is anything a client handle can be asked to deliver.
type Outbound interface {
	Kind() Kind
}

// Message is a chat line broadcast to a room.
type Message struct {
	Name    string
	Message string
}

// Joined announces a new member to everyone in the room, newcomer included.
type Joined struct {
	Room domain.RoomName
	Name string
}

// NameChange confirms a display name change to the session that asked for it.
// Produced by the session itself, never by the registry.
type NameChange struct {
	Name string
}

// RoomList renders a List reply for the session that asked for it.
type RoomList struct {
	Rooms []domain.RoomName
}

func (Message) Kind() Kind    { return MessageKind }
func (Joined) Kind() Kind     { return JoinedKind }
func (NameChange) Kind() Kind { return NameChangeKind }
func (RoomList) Kind() Kind   { return ListKind }
