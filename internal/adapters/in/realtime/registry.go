// Package realtime keeps the live subscriber sessions of this process and pushes order
// events to them.
//
// The Registry maps channels to sessions. It is created once at startup, passed to
// whoever needs it and closed at shutdown. Every session owns a bounded FIFO outbound
// queue drained by a single writer; a session that cannot keep up is disconnected so
// that the ones that can never see messages out of order.
package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"deliveryhub/internal/core/application/fanout"
	"deliveryhub/internal/core/domain/model/channel"
	"deliveryhub/internal/core/domain/model/member"
	"deliveryhub/internal/core/domain/services"
)

// ErrRegistryClosed is returned by Join after Close.
var ErrRegistryClosed = errors.New("subscription registry is closed")

// orderingHorizon bounds how long the last delivered version of an order is
// remembered per channel.
const orderingHorizon = 10 * time.Minute

// Session is one connected subscriber.
type Session interface {
	ID() string
	Principal() member.Principal
	// Enqueue appends payload to the outbound queue without blocking. It returns false
	// when the queue is full or the session is closed.
	Enqueue(payload []byte) bool
	// LastSeen is the time of the last inbound frame.
	LastSeen() time.Time
	Close()
}

// Stats is a point-in-time view of the registry.
type Stats struct {
	Sessions int
	Channels map[channel.Channel]int
}

type membership struct {
	session  Session
	channels map[channel.Channel]struct{}
}

type delivered struct {
	version int
	at      time.Time
}

// Registry implements fanout.Bus for the sessions of this process.
type Registry struct {
	policy services.SubscriptionPolicy
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	channels map[channel.Channel]map[string]Session
	sessions map[string]*membership
	closed   bool

	// seqMu serializes deliveries so that the version check and the enqueue happen
	// atomically for every channel.
	seqMu sync.Mutex
	last  map[channel.Channel]map[string]delivered
}

var _ fanout.Bus = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

func NewRegistry(logger *slog.Logger, opts ...Option) *Registry {
	r := &Registry{
		policy:   services.NewSubscriptionPolicy(),
		logger:   logger.With("component", "subscription_registry"),
		now:      time.Now,
		channels: make(map[channel.Channel]map[string]Session),
		sessions: make(map[string]*membership),
		last:     make(map[channel.Channel]map[string]delivered),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Join subscribes s to ch. The session's principal must be allowed on ch.
// Joining a channel twice is a no-op.
func (r *Registry) Join(s Session, ch channel.Channel) error {
	if err := r.policy.CanJoin(s.Principal(), ch); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRegistryClosed
	}

	m, ok := r.sessions[s.ID()]
	if !ok {
		m = &membership{session: s, channels: make(map[channel.Channel]struct{})}
		r.sessions[s.ID()] = m
	}
	m.channels[ch] = struct{}{}

	subscribers, ok := r.channels[ch]
	if !ok {
		subscribers = make(map[string]Session)
		r.channels[ch] = subscribers
	}
	subscribers[s.ID()] = s

	r.logger.Debug("session joined", "session_id", s.ID(), "channel", ch.String())
	return nil
}

// Leave unsubscribes s from ch. The session stays connected even with no channels left.
func (r *Registry) Leave(s Session, ch channel.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.sessions[s.ID()]; ok {
		delete(m.channels, ch)
	}
	r.removeSubscriber(ch, s.ID())

	r.logger.Debug("session left", "session_id", s.ID(), "channel", ch.String())
}

// Disconnect removes s from every channel and closes it.
func (r *Registry) Disconnect(s Session) {
	r.mu.Lock()
	r.detach(s.ID())
	r.mu.Unlock()

	s.Close()
}

// Channels returns the channels s is subscribed to.
func (r *Registry) Channels(s Session) []channel.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.sessions[s.ID()]
	if !ok {
		return nil
	}
	result := make([]channel.Channel, 0, len(m.channels))
	for ch := range m.channels {
		result = append(result, ch)
	}
	return result
}

// Deliver enqueues msg on every session subscribed to ch. A message older than one
// already delivered for the same order on ch is dropped. Sessions whose queue is full
// are disconnected.
func (r *Registry) Deliver(_ context.Context, ch channel.Channel, msg fanout.Message) error {
	r.seqMu.Lock()
	defer r.seqMu.Unlock()

	if r.isStale(ch, msg) {
		r.logger.Debug("dropping stale message",
			"channel", ch.String(), "order_id", msg.OrderID, "version", msg.Version)
		return nil
	}

	var slow []Session
	r.mu.RLock()
	for _, s := range r.channels[ch] {
		if !s.Enqueue(msg.Payload) {
			slow = append(slow, s)
		}
	}
	r.mu.RUnlock()

	for _, s := range slow {
		r.logger.Warn("disconnecting slow session",
			"session_id", s.ID(), "channel", ch.String())
		r.Disconnect(s)
	}
	return nil
}

// Sweep disconnects sessions silent for longer than idle and forgets ordering state
// older than the ordering horizon. It returns the number of disconnected sessions.
func (r *Registry) Sweep(idle time.Duration) int {
	now := r.now()

	r.mu.RLock()
	var stale []Session
	for _, m := range r.sessions {
		if now.Sub(m.session.LastSeen()) > idle {
			stale = append(stale, m.session)
		}
	}
	r.mu.RUnlock()

	for _, s := range stale {
		r.logger.Info("disconnecting idle session", "session_id", s.ID())
		r.Disconnect(s)
	}

	r.seqMu.Lock()
	for ch, orders := range r.last {
		for id, d := range orders {
			if now.Sub(d.at) > orderingHorizon {
				delete(orders, id)
			}
		}
		if len(orders) == 0 {
			delete(r.last, ch)
		}
	}
	r.seqMu.Unlock()

	return len(stale)
}

func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		Sessions: len(r.sessions),
		Channels: make(map[channel.Channel]int, len(r.channels)),
	}
	for ch, subscribers := range r.channels {
		stats.Channels[ch] = len(subscribers)
	}
	return stats
}

// Close disconnects every session. Later joins fail with ErrRegistryClosed.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	sessions := make([]Session, 0, len(r.sessions))
	for id, m := range r.sessions {
		sessions = append(sessions, m.session)
		r.detach(id)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	r.logger.Info("subscription registry closed", "sessions", len(sessions))
}

// detach must be called with mu held.
func (r *Registry) detach(sessionID string) {
	m, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	for ch := range m.channels {
		r.removeSubscriber(ch, sessionID)
	}
	delete(r.sessions, sessionID)
}

// removeSubscriber must be called with mu held.
func (r *Registry) removeSubscriber(ch channel.Channel, sessionID string) {
	subscribers, ok := r.channels[ch]
	if !ok {
		return
	}
	delete(subscribers, sessionID)
	if len(subscribers) == 0 {
		delete(r.channels, ch)
	}
}

// isStale records msg as the latest of its order on ch unless a newer or equal version
// was already delivered. Must be called with seqMu held.
func (r *Registry) isStale(ch channel.Channel, msg fanout.Message) bool {
	if msg.OrderID == "" {
		return false
	}

	orders, ok := r.last[ch]
	if !ok {
		orders = make(map[string]delivered)
		r.last[ch] = orders
	}
	if d, seen := orders[msg.OrderID]; seen && msg.Version <= d.version {
		return true
	}
	orders[msg.OrderID] = delivered{version: msg.Version, at: r.now()}
	return false
}
