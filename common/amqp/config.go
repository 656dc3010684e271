package amqp

import (
	"github.com/ykhdr/rainbow-hash/common/amqp/consumer"
	"github.com/ykhdr/rainbow-hash/common/amqp/publisher"
	"time"
)

type Config struct {
	URI              string           `kdl:"uri"`
	Username         string           `kdl:"username"`
	Password         string           `kdl:"password"`
	ReconnectTimeout time.Duration    `kdl:"reconnect-timeout"`
	PublisherConfig  *PublisherConfig `kdl:"publisher"`
	ConsumerConfig   *ConsumerConfig  `kdl:"consumer"`
}

// Enabled reports whether a broker was configured.
func (c *Config) Enabled() bool {
	return c != nil && c.URI != "" && c.ConsumerConfig != nil && c.ConsumerConfig.Queue != ""
}

type PublisherConfig struct {
	Exchange   string `kdl:"exchange"`
	RoutingKey string `kdl:"routing-key"`
}

func (p *PublisherConfig) ToPublisherConfig(marshal publisher.Marshal, contentType string) *publisher.Config {
	if p == nil {
		p = &PublisherConfig{}
	}
	return &publisher.Config{
		Exchange:    p.Exchange,
		RoutingKey:  p.RoutingKey,
		Marshal:     marshal,
		ContentType: contentType,
	}
}

type ConsumerConfig struct {
	Queue    string `kdl:"queue"`
	Prefetch int    `kdl:"prefetch"`
	Durable  bool   `kdl:"durable"`
}

func (c *ConsumerConfig) ToConsumerConfig(unmarshal consumer.Unmarshal, tag string) *consumer.Config {
	return &consumer.Config{
		Unmarshal: unmarshal,
		Queue:     c.Queue,
		Consumer:  tag,
		Prefetch:  c.Prefetch,
		Durable:   c.Durable,
	}
}
