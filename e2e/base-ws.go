package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"net/url"
	"roomcast/domain"
	"roomcast/domain/event"
	"roomcast/infrastructure/ws"
	"roomcast/runtime"
	"roomcast/runtime/workers"
	"roomcast/services"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

const (
	frameTimeout  = 2 * time.Second
	silenceWindow = 150 * time.Millisecond
)

type BaseWsSuite struct {
	suite.Suite
	Config Config

	server       *httptest.Server
	orchestrator *runtime.Orchestrator
	done         chan struct{}
}

// SetupSuite loads the environment configuration and starts a local server
// unless E2E_SERVER_ADDR points to one.
func (s *BaseWsSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr != "" {
		return
	}

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	telemetryChan := make(chan event.Event, 64)
	s.orchestrator = runtime.NewOrchestrator(log,
		workers.NewSupervisor(log, telemetryChan, 50*time.Millisecond),
		telemetryChan, runtime.NewSequentialIDGenerator(),
		64, 200*time.Millisecond, time.Second, time.Second, 8)
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		_ = s.orchestrator.Start(context.Background())
	}()

	server := ws.NewServer(log, services.NewChatService(s.orchestrator.Bus()), ws.Options{
		ConnectionBufferSize: 64,
		DefaultRoom:          domain.DefaultRoom,
		StaticDir:            s.T().TempDir(),
		WriteWait:            time.Second,
		PongWait:             10 * time.Second,
		MaxMessage:           4096,
	})
	s.server = httptest.NewServer(server.Handler())
	s.Config.ServerAddr = strings.TrimPrefix(s.server.URL, "http://")
}

func (s *BaseWsSuite) TearDownSuite() {
	if s.server == nil {
		return
	}
	s.server.Close()
	s.orchestrator.Stop()
	<-s.done
}

// Client is one websocket participant of a scenario.
// A background reader queues every frame, so waiting for silence never
// breaks the connection with a read deadline.
type Client struct {
	s      *BaseWsSuite
	t      *testing.T
	name   string
	conn   *websocket.Conn
	frames chan string
}

// Connect opens a websocket session, printing a header for the step in logs.
func (s *BaseWsSuite) Connect(name string) *Client {
	t := s.T()
	header := fmt.Sprintf("  ====== %s connects ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	u := url.URL{Scheme: "ws", Host: s.Config.ServerAddr, Path: "/ws/"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	s.Require().NoError(err, "Failed to connect to websocket server at "+u.String())

	c := &Client{s: s, t: t, name: name, conn: conn, frames: make(chan string, 64)}
	go func() {
		defer close(c.frames)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			c.frames <- string(data)
		}
	}()
	return c
}

func (c *Client) Send(frame string) {
	c.log(">>", frame)
	c.s.Require().NoError(c.conn.WriteMessage(websocket.TextMessage, []byte(frame)))
}

// Expect waits for the next frame and compares it with the JSON document expected.
func (c *Client) Expect(expected string) {
	c.s.JSONEq(expected, c.next(expected))
}

// ExpectRooms waits for a List frame holding at least rooms, in any order.
func (c *Client) ExpectRooms(rooms ...string) {
	var list struct {
		Type  string   `json:"type"`
		Rooms []string `json:"rooms"`
	}
	c.s.Require().NoError(json.Unmarshal([]byte(c.next("a room list")), &list))
	c.s.Equal("List", list.Type)
	c.s.Subset(list.Rooms, rooms)
}

// ExpectSilence fails if a frame arrives within a short window.
func (c *Client) ExpectSilence() {
	select {
	case frame, ok := <-c.frames:
		if ok {
			c.s.Failf("unexpected frame", "%s received %s", c.name, frame)
		}
	case <-time.After(silenceWindow):
	}
}

func (c *Client) Close() {
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = c.conn.Close()
}

func (c *Client) next(expected string) string {
	select {
	case frame, ok := <-c.frames:
		c.s.Require().True(ok, "%s lost its connection, expected %s", c.name, expected)
		c.log("<<", frame)
		return frame
	case <-time.After(frameTimeout):
		c.s.Require().FailNow("no frame", "%s expected %s", c.name, expected)
		return ""
	}
}

func (c *Client) log(direction, frame string) {
	if !c.s.Config.DebugJSON {
		return
	}
	line := fmt.Sprintf("%s %s %s", c.name, direction, frame)
	if c.s.Config.Colours {
		line = color.FgCyan.Render(line)
	}
	c.t.Log(line)
}
