package chat

import (
	"roomcast/contract"
	"roomcast/domain"
)

// Command is the closed set of instructions the room registry understands.
// The unexported marker keeps the set sealed to this package.
type Command interface {
	isCommand()
}

// JoinRoomCommand inserts Handle into Room and answers with the assigned id.
type JoinRoomCommand struct {
	Room   domain.RoomName
	Name   *string
	Handle contract.ClientHandle
	Reply  chan<- domain.MemberID
}

// LeaveRoomCommand removes a member. Fire-and-forget.
type LeaveRoomCommand struct {
	Room domain.RoomName
	ID   domain.MemberID
}

// ListRoomsCommand answers with every known room name, in no particular order.
type ListRoomsCommand struct {
	Reply chan<- []domain.RoomName
}

// SendMessageCommand broadcasts Text to every member of Room, sender included. Fire-and-forget.
type SendMessageCommand struct {
	Room domain.RoomName
	ID   domain.MemberID
	Name string
	Text string
}

// RoomStatsCommand answers with the member count of each room.
type RoomStatsCommand struct {
	Reply chan<- map[domain.RoomName]int
}

func (JoinRoomCommand) isCommand()    {}
func (LeaveRoomCommand) isCommand()   {}
func (ListRoomsCommand) isCommand()   {}
func (SendMessageCommand) isCommand() {}
func (RoomStatsCommand) isCommand()   {}
