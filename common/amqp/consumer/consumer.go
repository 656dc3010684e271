package consumer

import (
	"context"
	"encoding/json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/rainbow-hash/common/amqp/connection"
	"runtime/debug"
)

type Unmarshal func(data []byte, v any) error

// Handler processes one decoded message. Returning an error rejects the
// delivery without requeueing it.
type Handler[T any] func(ctx context.Context, data *T, delivery amqp.Delivery) error

type Config struct {
	Unmarshal Unmarshal
	Queue     string
	Consumer  string
	Prefetch  int
	Durable   bool
}

type Consumer interface {
	Subscribe(ctx context.Context)
}

type consumer[T any] struct {
	cfg     *Config
	ch      *connection.Channel
	handler Handler[T]
	l       zerolog.Logger
}

func New[T any](ch *connection.Channel, handler Handler[T], cfg *Config) Consumer {
	if handler == nil {
		handler = func(context.Context, *T, amqp.Delivery) error { return nil }
	}
	if cfg.Unmarshal == nil {
		cfg.Unmarshal = json.Unmarshal
	}
	return &consumer[T]{
		ch:      ch,
		handler: handler,
		cfg:     cfg,
		l: log.With().
			Str("domain", "amqp").
			Str("component", "consumer").
			Type("type", *new(T)).
			Str("queue", cfg.Queue).
			Logger(),
	}
}

func (c *consumer[T]) Subscribe(ctx context.Context) {
	msgCh := c.ch.Consume(ctx, c.cfg.Queue, c.cfg.Consumer, false)
	c.l.Debug().Msg("consumer connected")
	for {
		select {
		case <-ctx.Done():
			c.l.Debug().Msg("consumer stopped")
			return
		case d, ok := <-msgCh:
			if !ok {
				c.l.Debug().Msg("delivery stream closed")
				return
			}
			c.l.Debug().Bytes("body", d.Body).Msg("got new message")
			var data T
			if err := c.cfg.Unmarshal(d.Body, &data); err != nil {
				c.l.Error().Err(err).Msg("failed to unmarshal message")
				c.settle(d, false)
				continue
			}
			c.settle(d, c.handle(ctx, &data, d))
		}
	}
}

func (c *consumer[T]) handle(ctx context.Context, data *T, d amqp.Delivery) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.l.Error().Msgf("catch panic: %v\n%s", r, string(debug.Stack()))
			ok = false
		}
	}()
	if err := c.handler(ctx, data, d); err != nil {
		c.l.Error().Err(err).Msg("failed to handle message")
		return false
	}
	return true
}

func (c *consumer[T]) settle(d amqp.Delivery, ok bool) {
	var err error
	if ok {
		err = d.Ack(false)
	} else {
		err = d.Nack(false, false)
	}
	if err != nil {
		c.l.Warn().Err(err).Uint64("delivery-tag", d.DeliveryTag).Msg("failed to settle delivery")
	}
}
