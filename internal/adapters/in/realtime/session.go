package realtime

import (
	"sync"
	"sync/atomic"
	"time"

	"deliveryhub/internal/core/domain/model/member"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// DefaultQueueSize is the outbound queue length of a session.
	DefaultQueueSize = 64
)

// WebsocketSession is a Session backed by a gorilla websocket connection. Only
// writeLoop writes to the connection.
type WebsocketSession struct {
	id        string
	principal member.Principal
	conn      *websocket.Conn
	outbound  chan []byte
	done      chan struct{}
	closeOnce sync.Once
	lastSeen  atomic.Int64
}

func newWebsocketSession(conn *websocket.Conn, principal member.Principal, queueSize int) *WebsocketSession {
	s := &WebsocketSession{
		id:        uuid.NewString(),
		principal: principal,
		conn:      conn,
		outbound:  make(chan []byte, queueSize),
		done:      make(chan struct{}),
	}
	s.touch()
	return s
}

func (s *WebsocketSession) ID() string {
	return s.id
}

func (s *WebsocketSession) Principal() member.Principal {
	return s.principal
}

func (s *WebsocketSession) Enqueue(payload []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.outbound <- payload:
		return true
	default:
		return false
	}
}

func (s *WebsocketSession) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Close stops the writer, which sends a close frame and releases the connection.
// It is safe to call more than once.
func (s *WebsocketSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *WebsocketSession) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *WebsocketSession) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case payload := <-s.outbound:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
