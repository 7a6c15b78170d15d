package transport

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sveinns/rolebot/core"
	"github.com/sveinns/rolebot/logging"
)

// WebSocketOptions tune the websocket line transport.
type WebSocketOptions struct {
	// PingInterval is how often a ws-level ping is written. Zero disables
	// pings.
	PingInterval time.Duration
	// PongWait bounds how long the read side waits for any traffic before
	// the connection is considered dead.
	PongWait time.Duration
	// ReadLimit caps the size of a single inbound frame.
	ReadLimit int64
	// BufferSize is the inbound line channel buffer.
	BufferSize int
	// Logger receives connection diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// WebSocket is a line transport over a websocket connection, for chat
// backends that expose an IRC-style line stream through a gateway socket.
// Text frames are split on line endings; protocol PINGs are answered at this
// level and never surface as events.
type WebSocket struct {
	conn   *websocket.Conn
	lines  chan string
	logger logging.Logger

	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}

	pingInterval time.Duration
	pongWait     time.Duration
}

// DialWebSocket connects to url and starts the read and keepalive loops.
func DialWebSocket(ctx context.Context, url string, optFns ...func(o *WebSocketOptions)) (*WebSocket, error) {
	opts := WebSocketOptions{
		PingInterval: 20 * time.Second,
		PongWait:     60 * time.Second,
		ReadLimit:    1 << 20,
		BufferSize:   128,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	conn.SetReadLimit(opts.ReadLimit)

	w := &WebSocket{
		conn:         conn,
		lines:        make(chan string, opts.BufferSize),
		logger:       opts.Logger,
		done:         make(chan struct{}),
		pingInterval: opts.PingInterval,
		pongWait:     opts.PongWait,
	}

	_ = conn.SetReadDeadline(time.Now().Add(w.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(w.pongWait))
	})

	go w.readLoop()
	if w.pingInterval > 0 {
		go w.pingLoop()
	}
	return w, nil
}

// Send writes one outbound command as a text frame with a trailing CRLF.
func (w *WebSocket) Send(cmd core.Command) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	return w.conn.WriteMessage(websocket.TextMessage, []byte(cmd.String()+"\r\n"))
}

// Lines returns the inbound line stream. The channel closes when the
// connection ends.
func (w *WebSocket) Lines() <-chan string { return w.lines }

// Close shuts the connection down and ends the line stream.
func (w *WebSocket) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.writeMu.Lock()
		_ = w.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "closing"),
			time.Now().Add(500*time.Millisecond))
		w.writeMu.Unlock()
		err = w.conn.Close()
	})
	return err
}

func (w *WebSocket) readLoop() {
	defer close(w.lines)
	for {
		_, payload, err := w.conn.ReadMessage()
		if err != nil {
			select {
			case <-w.done:
			default:
				w.logger.Warn("Websocket read ended", "error", err)
			}
			return
		}
		_ = w.conn.SetReadDeadline(time.Now().Add(w.pongWait))

		// A frame may carry several protocol lines.
		for _, line := range strings.Split(string(payload), "\n") {
			line = strings.TrimRight(line, "\r")
			if line == "" {
				continue
			}
			// Answer server keepalives here; they are a connection concern
			// and never become events.
			if token, ok := strings.CutPrefix(line, "PING"); ok {
				if err := w.Send(core.Command("PONG" + token)); err != nil {
					w.logger.Warn("Keepalive reply failed", "error", err)
				}
				continue
			}
			select {
			case w.lines <- line:
			case <-w.done:
				return
			}
		}
	}
}

func (w *WebSocket) pingLoop() {
	ticker := time.NewTicker(w.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.writeMu.Lock()
			err := w.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
			w.writeMu.Unlock()
			if err != nil {
				w.logger.Warn("Websocket ping failed", "error", err)
				return
			}
		}
	}
}

var _ core.Transport = (*WebSocket)(nil)
var _ core.LineSource = (*WebSocket)(nil)
