package connection

import (
	"context"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrConnClosed    = errors.New("connection is already closed")
	ErrChannelClosed = errors.New("channel is already closed")
)

// Connection redials the broker whenever the underlying connection drops.
type Connection struct {
	l    zerolog.Logger
	uri  string
	opts amqp.Config

	mu   sync.RWMutex
	conn *amqp.Connection

	reconnectTimeout time.Duration
	closed           atomic.Bool
	cancel           context.CancelFunc
}

func NewConnection(ctx context.Context, uri string, opts amqp.Config, reconnectTimeout time.Duration) (*Connection, error) {
	c, err := amqp.DialConfig(uri, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial amqp connection")
	}
	ctx, cancel := context.WithCancel(ctx)
	conn := &Connection{
		l:                log.With().Str("domain", "amqp").Str("component", "connection").Logger(),
		uri:              uri,
		opts:             opts,
		conn:             c,
		reconnectTimeout: reconnectTimeout,
		cancel:           cancel,
	}
	go conn.watch(ctx)
	return conn, nil
}

func (c *Connection) Connection() *amqp.Connection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn
}

func (c *Connection) IsClosed() bool {
	return c.closed.Load()
}

func (c *Connection) Close() error {
	if c.closed.Swap(true) {
		return ErrConnClosed
	}
	c.cancel()
	if err := c.Connection().Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return errors.Wrap(err, "failed to close amqp connection")
	}
	return nil
}

func (c *Connection) watch(ctx context.Context) {
	b := newBackoff(c.reconnectTimeout)
	for {
		notify := c.Connection().NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-ctx.Done():
			c.l.Debug().Msg("connection watcher stopped")
			return
		case amqpErr, ok := <-notify:
			if !ok || c.IsClosed() {
				c.l.Debug().Msg("connection watcher stopped")
				return
			}
			c.l.Warn().Err(amqpErr).Msg("connection lost, reconnecting")
		}
		redialed := retry(ctx, c.l, b, c.IsClosed, func() error {
			cc, err := amqp.DialConfig(c.uri, c.opts)
			if err != nil {
				return err
			}
			c.mu.Lock()
			c.conn = cc
			c.mu.Unlock()
			return nil
		})
		if !redialed {
			return
		}
		c.l.Info().Msg("connection restored")
	}
}

// Channel opens a channel that reopens itself on the current connection
// after a failure. setup runs on every (re)opened channel.
func (c *Connection) Channel(ctx context.Context, setup ...func(*amqp.Channel) error) (*Channel, error) {
	ch := &Channel{
		l:                log.With().Str("domain", "amqp").Str("component", "channel").Logger(),
		conn:             c,
		setup:            setup,
		reconnectTimeout: c.reconnectTimeout,
	}
	if err := ch.open(); err != nil {
		return nil, err
	}
	ctx, ch.cancel = context.WithCancel(ctx)
	go ch.watch(ctx)
	return ch, nil
}
