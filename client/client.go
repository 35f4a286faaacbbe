// Package client is a terminal front-end for the websocket chat.
// Stdin lines become wire commands, inbound frames are rendered to the terminal.
package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/olekukonko/tablewriter"
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string `env:"CHAT_SERVER_ADDR,default=localhost:8080"`
	Name          string `env:"CHAT_NAME"`
	LogLevel      string `env:"LOG_LEVEL,default=INFO"`
}

// frame is what the client writes; the server rejects fields a type does not expect.
type frame struct {
	Type    string  `json:"type"`
	Message *string `json:"message,omitempty"`
	Room    *string `json:"room,omitempty"`
	Name    *string `json:"name,omitempty"`
}

// received is the union of every server event.
type received struct {
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Message string   `json:"message"`
	Room    string   `json:"room"`
	Rooms   []string `json:"rooms"`
}

// ParseLine maps one terminal line to a wire frame.
// "/join R", "/name N" and "/list" are commands, anything else is a message.
// Blank lines and incomplete commands are ignored.
func ParseLine(line string) ([]byte, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil, false
	}
	var f frame
	switch command, arg, _ := strings.Cut(line, " "); command {
	case "/join":
		if arg = strings.TrimSpace(arg); arg == "" {
			return nil, false
		}
		f = frame{Type: "Join", Room: &arg}
	case "/name":
		if arg = strings.TrimSpace(arg); arg == "" {
			return nil, false
		}
		f = frame{Type: "Name", Name: &arg}
	case "/list":
		f = frame{Type: "List"}
	default:
		f = frame{Type: "Message", Message: &line}
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Render writes a human readable form of one server frame to w.
func Render(w io.Writer, data []byte) error {
	var r received
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("unreadable frame: %w", err)
	}
	switch r.Type {
	case "Message":
		_, err := fmt.Fprintf(w, "%s %s\n", color.FgCyan.Render(r.Name+":"), r.Message)
		return err
	case "Joined":
		_, err := fmt.Fprintln(w, color.FgGreen.Render(fmt.Sprintf("* %s joined %s", r.Name, r.Room)))
		return err
	case "NameChange":
		_, err := fmt.Fprintln(w, color.FgYellow.Render(fmt.Sprintf("* you are now %s", r.Name)))
		return err
	case "List":
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Room"})
		table.SetAutoFormatHeaders(true)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetBorder(false)
		for _, room := range r.Rooms {
			table.Append([]string{room})
		}
		table.Render()
		return nil
	default:
		_, err := fmt.Fprintln(w, color.FgGray.Render(string(data)))
		return err
	}
}

// Client owns one websocket connection.
type Client struct {
	log  *slog.Logger
	conn *websocket.Conn
	out  io.Writer
	mu   sync.Mutex
}

// Dial connects to the chat endpoint of address.
func Dial(ctx context.Context, log *slog.Logger, address string, out io.Writer) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: address, Path: "/ws/"}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}
	return &Client{log: log, conn: conn, out: out}, nil
}

// Run pumps stdin to the server and server frames to out until ctx is done,
// the server goes away or in is exhausted.
func (c *Client) Run(ctx context.Context, in io.Reader) error {
	readErr := make(chan error, 1)
	go func() {
		readErr <- c.readLoop()
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			c.closeGracefully()
			return nil
		case err := <-readErr:
			return err
		case line, ok := <-lines:
			if !ok {
				c.closeGracefully()
				return nil
			}
			if err := c.Send(line); err != nil {
				return err
			}
		}
	}
}

// Send parses line and writes the resulting frame, if any.
func (c *Client) Send(line string) error {
	data, ok := ParseLine(line)
	if !ok {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) readLoop() error {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read frame: %w", err)
		}
		if err := Render(c.out, data); err != nil {
			c.log.Debug("Skipping frame", "error", err)
		}
	}
}

func (c *Client) closeGracefully() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
