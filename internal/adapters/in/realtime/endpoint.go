package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"deliveryhub/internal/core/domain/model/channel"
	"deliveryhub/internal/core/domain/model/member"
	"deliveryhub/internal/core/domain/services"

	"github.com/gorilla/websocket"
)

// Control message types sent by clients.
const (
	MessageJoin  = "join"
	MessageLeave = "leave"
)

// Reply message types sent to clients.
const (
	ReplyJoined = "joined"
	ReplyLeft   = "left"
	ReplyError  = "error"
)

// ControlMessage is a runtime subscription change sent by a client.
type ControlMessage struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
}

// Reply acknowledges or rejects a ControlMessage.
type Reply struct {
	Type    string `json:"type"`
	Channel string `json:"channel,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Endpoint upgrades HTTP requests to websocket sessions registered in a Registry.
type Endpoint struct {
	registry  *Registry
	policy    services.SubscriptionPolicy
	upgrader  websocket.Upgrader
	queueSize int
	logger    *slog.Logger
}

func NewEndpoint(registry *Registry, queueSize int, logger *slog.Logger) *Endpoint {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Endpoint{
		registry: registry,
		policy:   services.NewSubscriptionPolicy(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Principals are authenticated upstream.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		queueSize: queueSize,
		logger:    logger.With("component", "realtime_endpoint"),
	}
}

// ResolveChannels parses the requested channel names and checks them against p's role.
// With no names it returns p's default channel.
func (e *Endpoint) ResolveChannels(p member.Principal, names []string) ([]channel.Channel, error) {
	if len(names) == 0 {
		ch, err := e.policy.DefaultChannel(p)
		if err != nil {
			return nil, err
		}
		return []channel.Channel{ch}, nil
	}

	result := make([]channel.Channel, 0, len(names))
	for _, name := range names {
		ch, err := channel.Parse(name)
		if err != nil {
			return nil, err
		}
		if err = e.policy.CanJoin(p, ch); err != nil {
			return nil, err
		}
		result = append(result, ch)
	}
	return result, nil
}

// Serve upgrades the request, joins the session to channels and blocks until the
// client goes away or the session is disconnected.
func (e *Endpoint) Serve(w http.ResponseWriter, r *http.Request, p member.Principal, channels []channel.Channel) error {
	conn, err := e.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade: %w", err)
	}

	s := newWebsocketSession(conn, p, e.queueSize)
	go s.writeLoop()

	for _, ch := range channels {
		if err = e.registry.Join(s, ch); err != nil {
			e.registry.Disconnect(s)
			return err
		}
	}

	e.logger.Info("session connected",
		"session_id", s.ID(), "principal_id", p.ID.String(), "role", p.Role.String())
	e.readLoop(s)
	e.logger.Info("session disconnected", "session_id", s.ID())
	return nil
}

func (e *Endpoint) readLoop(s *WebsocketSession) {
	defer e.registry.Disconnect(s)

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.touch()
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				e.logger.Debug("session read failed", "session_id", s.ID(), "error", err)
			}
			return
		}
		s.touch()
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))

		e.handleControl(s, data)
	}
}

func (e *Endpoint) handleControl(s *WebsocketSession, data []byte) {
	var msg ControlMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		e.reply(s, Reply{Type: ReplyError, Error: "malformed message"})
		return
	}

	ch, err := channel.Parse(msg.Channel)
	if err != nil {
		e.reply(s, Reply{Type: ReplyError, Channel: msg.Channel, Error: err.Error()})
		return
	}

	switch msg.Type {
	case MessageJoin:
		if err = e.registry.Join(s, ch); err != nil {
			if errors.Is(err, ErrRegistryClosed) {
				e.registry.Disconnect(s)
				return
			}
			e.reply(s, Reply{Type: ReplyError, Channel: ch.String(), Error: err.Error()})
			return
		}
		e.reply(s, Reply{Type: ReplyJoined, Channel: ch.String()})
	case MessageLeave:
		e.registry.Leave(s, ch)
		e.reply(s, Reply{Type: ReplyLeft, Channel: ch.String()})
	default:
		e.reply(s, Reply{Type: ReplyError, Channel: ch.String(), Error: fmt.Sprintf("unknown message type %q", msg.Type)})
	}
}

func (e *Endpoint) reply(s *WebsocketSession, r Reply) {
	payload, err := json.Marshal(r)
	if err != nil {
		e.logger.Error("failed to encode reply", "error", err)
		return
	}
	if !s.Enqueue(payload) {
		e.registry.Disconnect(s)
	}
}
