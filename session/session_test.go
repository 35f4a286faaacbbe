package session

import (
	"context"
	"log/slog"
	"roomcast/domain"
	"roomcast/domain/event"
	"roomcast/errors"
	"roomcast/mocks"
	"roomcast/sink"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestSession(t *testing.T) (*Session, *mocks.MockIChatService, *sink.ConnectionSink) {
	t.Helper()
	ctrl := gomock.NewController(t)
	chat := mocks.NewMockIChatService(ctrl)
	handle := sink.NewConnectionSink(8)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return NewSession(log, chat, handle, domain.DefaultRoom), chat, handle
}

func TestSession_Start_Joins_Default_Room(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	sess, chat, handle := newTestSession(t)

	chat.EXPECT().JoinRoom(ctx, domain.DefaultRoom, nil, handle).Return(domain.MemberID(11), nil).Times(1)

	req.NoError(sess.Start(ctx))
	req.Equal(domain.DefaultRoom, sess.Room())
	req.Equal(domain.MemberID(11), sess.MemberID())
	req.Equal(domain.AnonymousName, sess.DisplayName())
	req.NotEmpty(sess.ID)
}

func TestSession_SendText_Uses_Current_Room_And_Name(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	sess, chat, handle := newTestSession(t)

	gomock.InOrder(
		chat.EXPECT().JoinRoom(ctx, domain.DefaultRoom, nil, handle).Return(domain.MemberID(1), nil),
		chat.EXPECT().SendMessage(ctx, domain.DefaultRoom, domain.MemberID(1), "anon", "hi"),
		chat.EXPECT().SendMessage(ctx, domain.DefaultRoom, domain.MemberID(1), "alice", "hi again"),
	)

	req.NoError(sess.Start(ctx))
	req.NoError(sess.Handle(ctx, SendText{Message: "hi"}))

	// When the name changes, the session confirms it locally
	req.NoError(sess.Handle(ctx, ChangeName{Name: "alice"}))
	req.Equal(event.NameChange{Name: "alice"}, <-handle.Events())

	// Then later messages carry it
	req.NoError(sess.Handle(ctx, SendText{Message: "hi again"}))
}

func TestSession_JoinRoom_Leaves_Previous_Room_First(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	sess, chat, handle := newTestSession(t)

	gomock.InOrder(
		chat.EXPECT().JoinRoom(ctx, domain.DefaultRoom, nil, handle).Return(domain.MemberID(1), nil),
		chat.EXPECT().LeaveRoom(ctx, domain.DefaultRoom, domain.MemberID(1)),
		chat.EXPECT().JoinRoom(ctx, domain.RoomName("Dev"), gomock.Any(), handle).Return(domain.MemberID(5), nil),
		chat.EXPECT().SendMessage(ctx, domain.RoomName("Dev"), domain.MemberID(5), "anon", "new room"),
	)

	req.NoError(sess.Start(ctx))
	req.NoError(sess.Handle(ctx, JoinRoom{Room: "Dev"}))
	req.NoError(sess.Handle(ctx, SendText{Message: "new room"}))
	req.Equal(domain.RoomName("Dev"), sess.Room())
}

func TestSession_Join_Carries_The_Display_Name(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	sess, chat, handle := newTestSession(t)

	gomock.InOrder(
		chat.EXPECT().JoinRoom(ctx, domain.DefaultRoom, nil, handle).Return(domain.MemberID(1), nil),
		chat.EXPECT().LeaveRoom(ctx, domain.DefaultRoom, domain.MemberID(1)),
		chat.EXPECT().JoinRoom(ctx, domain.RoomName("Dev"), lo.ToPtr("bob"), handle).Return(domain.MemberID(2), nil),
	)

	req.NoError(sess.Start(ctx))
	req.NoError(sess.Handle(ctx, ChangeName{Name: "bob"}))
	req.NoError(sess.Handle(ctx, JoinRoom{Room: "Dev"}))
}

func TestSession_Failed_Join_Drops_Messages(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	sess, chat, handle := newTestSession(t)

	chat.EXPECT().JoinRoom(ctx, domain.DefaultRoom, nil, handle).Return(domain.MemberID(0), errors.ErrRegistryStopped)
	chat.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	chat.EXPECT().LeaveRoom(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := sess.Start(ctx)
	req.ErrorIs(err, errors.ErrRegistryStopped)

	// Then nothing is sent and stopping has nothing to leave
	req.NoError(sess.Handle(ctx, SendText{Message: "lost"}))
	sess.Stop(ctx)
}

func TestSession_ListRooms_Is_Delivered_To_Itself(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	sess, chat, handle := newTestSession(t)

	rooms := []domain.RoomName{domain.DefaultRoom, "Dev"}
	chat.EXPECT().ListRooms(ctx).Return(rooms, nil)

	req.NoError(sess.Handle(ctx, ListRooms{}))
	req.Equal(event.RoomList{Rooms: rooms}, <-handle.Events())

	// When the registry is gone
	chat.EXPECT().ListRooms(ctx).Return(nil, errors.ErrRegistryStopped)
	req.ErrorIs(sess.Handle(ctx, ListRooms{}), errors.ErrRegistryStopped)
}

func TestSession_Stop_Leaves_Current_Room(t *testing.T) {
	ctx := context.Background()
	sess, chat, handle := newTestSession(t)

	gomock.InOrder(
		chat.EXPECT().JoinRoom(ctx, domain.DefaultRoom, nil, handle).Return(domain.MemberID(3), nil),
		chat.EXPECT().LeaveRoom(ctx, domain.DefaultRoom, domain.MemberID(3)).Times(1),
	)

	require.NoError(t, sess.Start(ctx))
	sess.Stop(ctx)
}

type unknownInbound struct{}

func (unknownInbound) isInbound() {}

func TestSession_Rejects_Unknown_Commands(t *testing.T) {
	sess, _, _ := newTestSession(t)
	require.ErrorIs(t, sess.Handle(context.Background(), unknownInbound{}), errors.ErrUnknownCommand)
}
