// Package amqp wraps amqp091-go with reconnecting connections and channels
// and typed consumers and publishers on top of them.
package amqp

import (
	"context"
	amqp "github.com/rabbitmq/amqp091-go"
	conn "github.com/ykhdr/rainbow-hash/common/amqp/connection"
)

func Dial(ctx context.Context, cfg *Config) (*conn.Connection, error) {
	opts := amqp.Config{
		SASL: []amqp.Authentication{
			&amqp.PlainAuth{
				Username: cfg.Username,
				Password: cfg.Password,
			},
		},
		Properties: amqp.NewConnectionProperties(),
	}
	opts.Properties.SetClientConnectionName("rainbow-hash")
	return conn.NewConnection(ctx, cfg.URI, opts, cfg.ReconnectTimeout)
}
