// Package rabbitmq relays fanout messages between service instances through a RabbitMQ
// fanout exchange.
//
// Every instance publishes the messages of its own commits to the exchange and consumes
// all messages from a private, auto-deleted queue bound to it, handing them to its local
// subscription registry. Instances sharing one database therefore push every committed
// change to every connected subscriber, wherever the write happened.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"deliveryhub/internal/core/application/fanout"
	"deliveryhub/internal/core/domain/model/channel"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	ErrRelayClosed  = errors.New("rabbitmq: relay is closed")
	ErrNotConfirmed = errors.New("rabbitmq: broker did not confirm the message")
)

// DefaultExchange is used when no exchange name is given.
const DefaultExchange = "deliveryhub.order-events"

const (
	publishTimeout = 5 * time.Second
	prefetch       = 50
	retryBaseDelay = time.Second
	retryMaxDelay  = 30 * time.Second
)

// Relay implements fanout.Bus by publishing to the exchange. It is safe for concurrent use.
type Relay struct {
	url      string
	exchange string
	logger   *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	pubChan *amqp.Channel
	closed  bool
}

var _ fanout.Bus = (*Relay)(nil)

// Dial connects to the broker and declares the exchange.
func Dial(url, exchange string, logger *slog.Logger) (*Relay, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	r := &Relay{
		url:      url,
		exchange: exchange,
		logger:   logger.With("component", "rabbitmq_relay", "exchange", exchange),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.connectLocked(); err != nil {
		return nil, err
	}
	return r, nil
}

// Deliver publishes msg and waits for the broker's confirmation.
func (r *Relay) Deliver(ctx context.Context, ch channel.Channel, msg fanout.Message) error {
	pubChan, err := r.publishChannel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	confirmation, err := pubChan.PublishWithDeferredConfirmWithContext(ctx,
		r.exchange, ch.String(), false, false, encode(ch, msg))
	if err != nil {
		return fmt.Errorf("rabbitmq: publish to %s: %w", ch, err)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("rabbitmq: confirm for %s: %w", ch, err)
	}
	if !acked {
		return ErrNotConfirmed
	}
	return nil
}

// Consume hands every message published to the exchange, by any instance, to sink.
// It reopens its channel with exponential backoff when the broker goes away and
// returns when ctx is done.
func (r *Relay) Consume(ctx context.Context, sink fanout.Bus) error {
	backoff := retryBaseDelay
	for {
		if ctx.Err() != nil {
			return nil
		}

		err := r.consumeOnce(ctx, sink)
		if errors.Is(err, ErrRelayClosed) {
			return nil
		}
		if err != nil {
			r.logger.Error("consumer stopped", "error", err, "retry_in", backoff.String())
		} else {
			backoff = retryBaseDelay
		}

		if !sleepWithContext(ctx, backoff) {
			return nil
		}
		backoff = nextBackoff(backoff, retryMaxDelay)
	}
}

// Close releases the broker connection. Consume returns once it notices.
func (r *Relay) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	if r.pubChan != nil {
		err = r.pubChan.Close()
		r.pubChan = nil
	}
	if r.conn != nil {
		err = errors.Join(err, r.conn.Close())
		r.conn = nil
	}
	return err
}

func (r *Relay) consumeOnce(ctx context.Context, sink fanout.Bus) error {
	ch, err := r.consumerChannel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	queue, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: declare queue: %w", err)
	}
	if err = ch.QueueBind(queue.Name, "", r.exchange, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: bind queue: %w", err)
	}

	deliveries, err := ch.Consume(queue.Name, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: consume: %w", err)
	}
	closed := ch.NotifyClose(make(chan *amqp.Error, 1))

	r.logger.Info("consumer started", "queue", queue.Name)
	for {
		select {
		case <-ctx.Done():
			return nil
		case amqpErr := <-closed:
			if amqpErr != nil {
				return amqpErr
			}
			return r.closedOr(errors.New("rabbitmq: consumer channel closed"))
		case d, ok := <-deliveries:
			if !ok {
				return r.closedOr(errors.New("rabbitmq: deliveries channel closed"))
			}
			r.handle(ctx, sink, d)
		}
	}
}

func (r *Relay) handle(ctx context.Context, sink fanout.Bus, d amqp.Delivery) {
	ch, msg, err := decode(d)
	if err != nil {
		r.logger.Warn("dropping undecodable message", "error", err)
		_ = d.Ack(false)
		return
	}

	if err = sink.Deliver(ctx, ch, msg); err != nil {
		r.logger.Warn("local delivery failed", "channel", ch.String(), "order_id", msg.OrderID, "error", err)
	}
	if err = d.Ack(false); err != nil {
		r.logger.Error("ack failed", "error", err)
	}
}

func (r *Relay) closedOr(err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRelayClosed
	}
	return err
}

func (r *Relay) publishChannel() (*amqp.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRelayClosed
	}
	if r.pubChan == nil || r.pubChan.IsClosed() || r.conn == nil || r.conn.IsClosed() {
		if err := r.connectLocked(); err != nil {
			return nil, err
		}
	}
	return r.pubChan, nil
}

func (r *Relay) consumerChannel() (*amqp.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRelayClosed
	}
	if r.conn == nil || r.conn.IsClosed() {
		if err := r.connectLocked(); err != nil {
			return nil, err
		}
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	if err = ch.Qos(prefetch, 0, false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("rabbitmq: set qos: %w", err)
	}
	return ch, nil
}

// connectLocked must be called with mu held.
func (r *Relay) connectLocked() error {
	if r.conn == nil || r.conn.IsClosed() {
		conn, err := amqp.DialConfig(r.url, amqp.Config{
			Heartbeat: 10 * time.Second,
			Locale:    "en_US",
			Dial:      amqp.DefaultDial(10 * time.Second),
		})
		if err != nil {
			return fmt.Errorf("rabbitmq: dial: %w", err)
		}
		r.conn = conn
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	if err = ch.ExchangeDeclare(r.exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return fmt.Errorf("rabbitmq: declare exchange %s: %w", r.exchange, err)
	}
	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		return fmt.Errorf("rabbitmq: enable confirms: %w", err)
	}

	if r.pubChan != nil {
		_ = r.pubChan.Close()
	}
	r.pubChan = ch
	r.logger.Info("connected to broker")
	return nil
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func nextBackoff(curr, limit time.Duration) time.Duration {
	n := curr * 2
	if n > limit {
		return limit
	}
	return n
}
