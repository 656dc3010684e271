package publisher

import (
	"context"
	"encoding/json"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/rainbow-hash/common/amqp/connection"
	"time"
)

type DeliveryMode uint8

const (
	Transient  DeliveryMode = 1
	Persistent DeliveryMode = 2
)

type Marshal func(any) ([]byte, error)

type Config struct {
	Exchange    string
	RoutingKey  string
	Marshal     Marshal
	ContentType string
}

// Route overrides the configured destination, e.g. to answer a request's
// ReplyTo queue through the default exchange.
type Route struct {
	Exchange      string
	RoutingKey    string
	CorrelationID string
}

// ReplyRoute addresses the reply to d, or reports false when d does not
// ask for one.
func ReplyRoute(d amqp.Delivery) (Route, bool) {
	if d.ReplyTo == "" {
		return Route{}, false
	}
	return Route{RoutingKey: d.ReplyTo, CorrelationID: d.CorrelationId}, true
}

type Sender interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error
}

type Publisher[T any] interface {
	SendMessage(ctx context.Context, message *T, mode DeliveryMode) error
	SendMessageTo(ctx context.Context, route Route, message *T, mode DeliveryMode) error
}

type publisher[T any] struct {
	cfg *Config
	ch  Sender
	l   zerolog.Logger
}

func New[T any](ch *connection.Channel, cfg *Config) Publisher[T] {
	return NewWithSender[T](ch, cfg)
}

func NewWithSender[T any](ch Sender, cfg *Config) Publisher[T] {
	if cfg.Marshal == nil {
		cfg.Marshal = json.Marshal
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "application/json"
	}
	return &publisher[T]{
		cfg: cfg,
		ch:  ch,
		l: log.With().
			Str("domain", "amqp").
			Str("component", "publisher").
			Type("type", *new(T)).
			Logger(),
	}
}

func (p *publisher[T]) SendMessage(ctx context.Context, message *T, mode DeliveryMode) error {
	return p.SendMessageTo(ctx, Route{Exchange: p.cfg.Exchange, RoutingKey: p.cfg.RoutingKey}, message, mode)
}

func (p *publisher[T]) SendMessageTo(ctx context.Context, route Route, message *T, mode DeliveryMode) error {
	body, err := p.cfg.Marshal(message)
	if err != nil {
		p.l.Error().Err(err).Msg("failed to marshal message")
		return errors.Wrap(err, "failed to marshal message")
	}
	msg := amqp.Publishing{
		DeliveryMode:  uint8(mode),
		ContentType:   p.cfg.ContentType,
		CorrelationId: route.CorrelationID,
		Timestamp:     time.Now(),
		Body:          body,
	}
	p.l.Debug().
		Str("exchange", route.Exchange).
		Str("routing-key", route.RoutingKey).
		Msg("send message")
	if err := p.ch.Publish(ctx, route.Exchange, route.RoutingKey, msg); err != nil {
		p.l.Error().Err(err).Msg("failed to send message")
		return errors.Wrap(err, "failed to send message")
	}
	return nil
}
