package connection

import (
	"context"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"sync"
	"sync/atomic"
	"time"
)

type Channel struct {
	l     zerolog.Logger
	conn  *Connection
	setup []func(*amqp.Channel) error

	mu sync.RWMutex
	ch *amqp.Channel

	reconnectTimeout time.Duration
	closed           atomic.Bool
	cancel           context.CancelFunc
}

// DeclareQueue returns a setup step declaring queue and limiting unacked
// deliveries to prefetch.
func DeclareQueue(queue string, durable bool, prefetch int) func(*amqp.Channel) error {
	return func(ch *amqp.Channel) error {
		if _, err := ch.QueueDeclare(queue, durable, false, false, false, nil); err != nil {
			return errors.Wrapf(err, "failed to declare queue %s", queue)
		}
		if prefetch > 0 {
			if err := ch.Qos(prefetch, 0, false); err != nil {
				return errors.Wrap(err, "failed to set prefetch")
			}
		}
		return nil
	}
}

func (ch *Channel) open() error {
	amqpCh, err := ch.conn.Connection().Channel()
	if err != nil {
		return errors.Wrap(err, "failed to open channel")
	}
	for _, step := range ch.setup {
		if err := step(amqpCh); err != nil {
			_ = amqpCh.Close()
			return err
		}
	}
	ch.mu.Lock()
	ch.ch = amqpCh
	ch.mu.Unlock()
	return nil
}

func (ch *Channel) Channel() *amqp.Channel {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.ch
}

func (ch *Channel) IsClosed() bool {
	return ch.closed.Load()
}

func (ch *Channel) Close() error {
	if ch.closed.Swap(true) {
		return ErrChannelClosed
	}
	ch.cancel()
	if err := ch.Channel().Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return errors.Wrap(err, "failed to close amqp channel")
	}
	return nil
}

func (ch *Channel) watch(ctx context.Context) {
	b := newBackoff(ch.reconnectTimeout)
	stop := func() bool { return ch.IsClosed() || ch.conn.IsClosed() }
	for {
		notify := ch.Channel().NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-ctx.Done():
			ch.l.Debug().Msg("channel watcher stopped")
			return
		case amqpErr, ok := <-notify:
			if ch.IsClosed() {
				ch.l.Debug().Msg("channel watcher stopped")
				return
			}
			if ok {
				ch.l.Warn().Err(amqpErr).Msg("channel lost, reopening")
			}
		}
		if !retry(ctx, ch.l, b, stop, ch.open) {
			return
		}
		ch.l.Info().Msg("channel restored")
	}
}

// Consume delivers messages from queue across channel reopenings until ctx
// is done or the channel is closed.
func (ch *Channel) Consume(ctx context.Context, queue, consumer string, autoAck bool) <-chan amqp.Delivery {
	deliveries := make(chan amqp.Delivery)
	go ch.runConsumer(ctx, deliveries, queue, consumer, autoAck)
	return deliveries
}

func (ch *Channel) runConsumer(ctx context.Context, out chan<- amqp.Delivery, queue, consumer string, autoAck bool) {
	defer close(out)
	b := newBackoff(ch.reconnectTimeout)
	for !ch.IsClosed() && ctx.Err() == nil {
		in, err := ch.Channel().ConsumeWithContext(ctx, queue, consumer, autoAck, false, false, false, nil)
		if err != nil {
			delay := b.Duration()
			ch.l.Error().Err(err).Dur("retry-in", delay).Msg("failed to consume")
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			continue
		}
		b.Reset()
		for d := range in {
			select {
			case out <- d:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (ch *Channel) Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error {
	if ch.IsClosed() {
		return ErrChannelClosed
	}
	if err := ch.Channel().PublishWithContext(ctx, exchange, key, false, false, msg); err != nil {
		return errors.Wrap(err, "failed to publish")
	}
	return nil
}
