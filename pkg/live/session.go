package live

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridbind-dev/gridbind/pkg/protocol"
)

// sessionSeq numbers sessions for logging.
var sessionSeq atomic.Uint64

// Session is one connected remote client.
type Session struct {
	id     string
	conn   *websocket.Conn
	view   *View
	config Config
	logger *slog.Logger

	send      chan []byte
	closeOnce sync.Once
	done      chan struct{}
}

func newSession(view *View, conn *websocket.Conn) *Session {
	id := fmt.Sprintf("s%d", sessionSeq.Add(1))
	return &Session{
		id:     id,
		conn:   conn,
		view:   view,
		config: view.config,
		logger: view.logger.With("session", id),
		send:   make(chan []byte, view.config.SendBuffer),
		done:   make(chan struct{}),
	}
}

// ID returns the session's log identifier.
func (s *Session) ID() string {
	return s.id
}

// Send queues an encoded frame for delivery. A session whose queue is full
// is closed: a stalled client must not block the caller.
func (s *Session) Send(frame []byte) {
	select {
	case s.send <- frame:
	case <-s.done:
	default:
		s.logger.Warn("send queue full, dropping session")
		s.Close()
	}
}

// Close tears the connection down. Safe to call multiple times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
		s.view.unregister(s)
	})
}

// readLoop consumes client messages until the connection dies. Besides
// observing pongs and connection closure, it serves control frames; any
// other client message is ignored.
func (s *Session) readLoop() {
	defer s.Close()

	s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		s.handleMessage(msg)
	}
}

// handleMessage interprets one client frame. Only control frames carry
// meaning; a malformed or unexpected message is dropped, not fatal.
func (s *Session) handleMessage(msg []byte) {
	frame, err := protocol.DecodeFrame(msg)
	if err != nil || frame.Type != protocol.FrameControl {
		return
	}
	op, err := protocol.DecodeControl(frame.Payload)
	if err != nil {
		s.logger.Warn("bad control frame", "error", err)
		return
	}
	if op == protocol.ControlResync {
		s.view.resync(s)
	}
}

// writeLoop delivers queued frames and keepalive pings.
func (s *Session) writeLoop() {
	ticker := time.NewTicker(s.config.PingInterval)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case frame := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				s.logger.Error("write error", "error", err)
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}
