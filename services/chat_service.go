//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"roomcast/contract"
	"roomcast/domain"
)

type IChatService interface {
	JoinRoom(ctx context.Context, room domain.RoomName, name *string, handle contract.ClientHandle) (domain.MemberID, error)
	LeaveRoom(ctx context.Context, room domain.RoomName, id domain.MemberID)
	SendMessage(ctx context.Context, room domain.RoomName, id domain.MemberID, name, text string)
	ListRooms(ctx context.Context) ([]domain.RoomName, error)
	RoomStats(ctx context.Context) (map[domain.RoomName]int, error)
}

type ChatService struct {
	bus contract.IBus
}

func NewChatService(bus contract.IBus) *ChatService {
	return &ChatService{bus: bus}
}

func (s *ChatService) JoinRoom(ctx context.Context, room domain.RoomName, name *string,
	handle contract.ClientHandle) (domain.MemberID, error) {
	return s.bus.Join(ctx, room, name, handle)
}

func (s *ChatService) LeaveRoom(ctx context.Context, room domain.RoomName, id domain.MemberID) {
	s.bus.Leave(ctx, room, id)
}

func (s *ChatService) SendMessage(ctx context.Context, room domain.RoomName, id domain.MemberID, name, text string) {
	s.bus.Send(ctx, room, id, name, text)
}

func (s *ChatService) ListRooms(ctx context.Context) ([]domain.RoomName, error) {
	return s.bus.List(ctx)
}

func (s *ChatService) RoomStats(ctx context.Context) (map[domain.RoomName]int, error) {
	return s.bus.Stats(ctx)
}
