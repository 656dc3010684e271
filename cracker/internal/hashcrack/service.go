package hashcrack

import (
	"context"
	"encoding/xml"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	amqpcfg "github.com/ykhdr/rainbow-hash/common/amqp"
	amqpconn "github.com/ykhdr/rainbow-hash/common/amqp/connection"
	"github.com/ykhdr/rainbow-hash/common/amqp/consumer"
	"github.com/ykhdr/rainbow-hash/common/amqp/publisher"
	"github.com/ykhdr/rainbow-hash/pkg/messages"
)

const consumerTag = "rainbow-cracker"

// Service consumes CrackHashRequest messages and publishes one
// CrackHashResponse for each, to the request's ReplyTo queue when it names
// one and to the configured exchange otherwise.
type Service struct {
	l            zerolog.Logger
	cfg          *amqpcfg.Config
	consumerCfg  *consumer.Config
	publisherCfg *publisher.Config
	cracker      *Cracker

	amqpConn      *amqpconn.Connection
	amqpPublisher publisher.Publisher[messages.CrackHashResponse]
}

func NewService(cfg *amqpcfg.Config, cracker *Cracker, amqpConn *amqpconn.Connection) *Service {
	return &Service{
		cfg:          cfg,
		cracker:      cracker,
		amqpConn:     amqpConn,
		consumerCfg:  cfg.ConsumerConfig.ToConsumerConfig(xml.Unmarshal, consumerTag),
		publisherCfg: cfg.PublisherConfig.ToPublisherConfig(xml.Marshal, "application/xml"),
		l: log.With().
			Str("domain", "hashcrack").
			Str("type", "service").
			Logger(),
	}
}

// Start blocks consuming until ctx is done.
func (s *Service) Start(ctx context.Context) error {
	ch, err := s.amqpConn.Channel(ctx, amqpconn.DeclareQueue(s.consumerCfg.Queue, s.consumerCfg.Durable, s.consumerCfg.Prefetch))
	if err != nil {
		s.l.Warn().Err(err).Msg("error create amqp channel")
		return errors.Wrap(err, "error create amqp channel")
	}
	defer func() { _ = ch.Close() }()
	s.amqpPublisher = publisher.New[messages.CrackHashResponse](ch, s.publisherCfg)
	s.l.Info().Str("queue", s.consumerCfg.Queue).Msg("hashcrack service is running")
	consumer.New(ch, s.receive, s.consumerCfg).Subscribe(ctx)
	return nil
}

func (s *Service) receive(ctx context.Context, req *messages.CrackHashRequest, d amqp.Delivery) error {
	if req.Hash == "" {
		return errors.New("request without hash")
	}
	resp := s.cracker.Crack(ctx, req)
	if route, ok := publisher.ReplyRoute(d); ok {
		return s.amqpPublisher.SendMessageTo(ctx, route, resp, publisher.Persistent)
	}
	return s.amqpPublisher.SendMessage(ctx, resp, publisher.Persistent)
}
