package ws

import (
	"roomcast/domain"
	"roomcast/domain/event"
	"roomcast/errors"
	"roomcast/session"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("known commands", func(t *testing.T) {
		req := require.New(t)
		cases := map[string]session.Inbound{
			`{"type":"Message","message":"hello"}`: session.SendText{Message: "hello"},
			`{"type":"Message","message":""}`:      session.SendText{Message: ""},
			`{"type":"Join","room":"Dev"}`:         session.JoinRoom{Room: "Dev"},
			`{"type":"Name","name":"alice"}`:       session.ChangeName{Name: "alice"},
			`{"type":"List"}`:                      session.ListRooms{},
		}
		for frame, expected := range cases {
			in, err := Decode([]byte(frame))
			req.NoError(err, frame)
			req.Equal(expected, in, frame)
		}
	})

	t.Run("undecodable frames", func(t *testing.T) {
		req := require.New(t)
		for _, frame := range []string{
			`garbage`,
			`{"type":"Shout","message":"hi"}`,
			`{"type":"Message"}`,
			`{"type":"Join"}`,
			`{"type":"Name","room":"Dev"}`,
			`{"message":"no type"}`,
			`{"type":"Join","room":42}`,
		} {
			_, err := Decode([]byte(frame))
			req.ErrorIs(err, errors.ErrUndecodable, frame)
		}
	})
}

func TestEncode(t *testing.T) {
	t.Run("field order is stable", func(t *testing.T) {
		req := require.New(t)
		cases := []struct {
			evt      event.Outbound
			expected string
		}{
			{event.Message{Name: "alice", Message: "hi"}, `{"type":"Message","name":"alice","message":"hi"}`},
			{event.Joined{Room: domain.DefaultRoom, Name: "anon"}, `{"type":"Joined","room":"Main","name":"anon"}`},
			{event.NameChange{Name: "bob"}, `{"type":"NameChange","name":"bob"}`},
			{event.RoomList{Rooms: []domain.RoomName{"Main", "Dev"}}, `{"type":"List","rooms":["Main","Dev"]}`},
			{event.RoomList{}, `{"type":"List","rooms":[]}`},
		}
		for _, c := range cases {
			data, err := Encode(c.evt)
			req.NoError(err)
			req.Equal(c.expected, string(data))
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := Encode(nil)
		require.ErrorIs(t, err, errors.ErrUnknownEvent)
	})
}
