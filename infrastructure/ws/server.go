// Package ws exposes the chat over websocket: HTTP routes, upgrade,
// one read pump and one write pump per connection.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"roomcast/domain"
	"roomcast/services"
	"roomcast/session"
	"roomcast/sink"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	ConnectionBufferSize int
	DefaultRoom          domain.RoomName
	StaticDir            string
	WriteWait            time.Duration
	PongWait             time.Duration
	MaxMessage           int64
}

type Server struct {
	log      *slog.Logger
	chat     services.IChatService
	opts     Options
	upgrader websocket.Upgrader
}

func NewServer(log *slog.Logger, chat services.IChatService, opts Options) *Server {
	return &Server{
		log:  log,
		chat: chat,
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler wires every route of the chat server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws/", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.opts.StaticDir))))
	return s.loggingMiddleware(mux)
}

// Run serves addr until ctx is done, then shuts the HTTP server down.
// Open websocket sessions derive from ctx and close with it.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errChan := make(chan error, 1)
	go func() {
		s.log.Info("Starting websocket server", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/static/websocket.html", http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := s.chat.RoomStats(r.Context())
	if err != nil {
		s.log.Error("Room stats unavailable", "error", err)
		http.Error(w, "room registry unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"rooms": stats})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader already answered the client.
		s.log.Debug("Websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	handle := sink.NewConnectionSink(s.opts.ConnectionBufferSize)
	sess := session.NewSession(s.log, s.chat, handle, s.opts.DefaultRoom)
	c := &connection{log: s.log.With("session_id", sess.ID), conn: conn, sink: handle, session: sess, opts: s.opts}

	go c.writeLoop(ctx)

	if err := sess.Start(ctx); err != nil {
		c.log.Warn("Default room join failed", "error", err)
		c.close()
		return
	}
	c.readLoop(ctx)
	sess.Stop(context.WithoutCancel(ctx))
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

type connection struct {
	log       *slog.Logger
	conn      *websocket.Conn
	sink      *sink.ConnectionSink
	session   *session.Session
	opts      Options
	closeOnce sync.Once
}

// readLoop feeds text frames to the session until the peer goes away.
// Undecodable frames are dropped and the connection stays open.
func (c *connection) readLoop(ctx context.Context) {
	defer c.close()

	c.conn.SetReadLimit(c.opts.MaxMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("Websocket read error", "error", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		in, err := Decode(data)
		if err != nil {
			c.log.Debug("Dropping inbound frame", "error", err)
			continue
		}
		if err := c.session.Handle(ctx, in); err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.Warn("Inbound command failed", "error", err)
		}
	}
}

// writeLoop is the only writer of the connection.
func (c *connection) writeLoop(ctx context.Context) {
	ticker := time.NewTicker(c.opts.PongWait * 3 / 4)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case evt := <-c.sink.Events():
			payload, err := Encode(evt)
			if err != nil {
				c.log.Error("Outbound event not encodable", "error", err)
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.sink.Done():
			return
		case <-ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}

// close marks the handle dead for the registry and releases the socket.
func (c *connection) close() {
	c.closeOnce.Do(func() {
		c.sink.Close()
		_ = c.conn.Close()
	})
}
