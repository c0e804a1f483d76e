package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/TaslimOwolarafe/JoyRoom/internal/relay"
)

type Server struct {
	upgrader websocket.Upgrader
	router   *relay.Router

	pingEvery time.Duration
	readLimit int64
}

type Option func(*Server)

func WithPingInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.pingEvery = d
		}
	}
}

func WithReadLimit(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.readLimit = n
		}
	}
}

func NewServer(router *relay.Router, opts ...Option) *Server {
	s := &Server{
		router: router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
		readLimit: 1 << 20,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// WS endpoint: GET /ws. The connection starts unjoined; the client associates
// itself with a room through a join-room event. Usernames are self-asserted,
// there is no authentication on this path.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(uuid.NewString(), conn)
	s.router.Register(c)
	slog.Debug("ws connected", "conn", c.ID())

	go s.writeLoop(r.Context(), c)
	s.readLoop(c)

	s.router.HandleDisconnect(c)
	slog.Debug("ws disconnected", "conn", c.ID())

	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "conn", c.ID(), "err", err)
	}
}

func (s *Server) readLoop(c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(s.readLimit)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var ev relay.Inbound
		if err := json.Unmarshal(data, &ev); err != nil {
			// malformed frame, drop it
			continue
		}
		s.router.Dispatch(c, ev)
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}
