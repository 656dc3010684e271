package config

import (
	"github.com/pkg/errors"
	"github.com/ykhdr/rainbow-hash/common/amqp"
	"github.com/ykhdr/rainbow-hash/common/config"
	"github.com/ykhdr/rainbow-hash/common/consul"
	"github.com/ykhdr/rainbow-hash/common/store/mongo"
	"github.com/ykhdr/rainbow-hash/cracker/internal/hashcrack/strategy"
	"github.com/ykhdr/rainbow-hash/pkg/digest"
	"time"
)

type CrackerConfig struct {
	config.LogConfig
	Algorithm     string         `kdl:"algorithm"`
	Record        string         `kdl:"record"`
	Strategy      string         `kdl:"strategy"`
	CacheSize     int            `kdl:"cache-size"`
	CacheTTL      time.Duration  `kdl:"cache-ttl"`
	Passwords     string         `kdl:"passwords"`
	Salts         string         `kdl:"salts"`
	Encodings     []string       `kdl:"encodings"`
	SearchTimeout time.Duration  `kdl:"search-timeout"`
	ApiServerAddr string         `kdl:"api-server-addr"`
	ServerPort    int            `kdl:"server-port"`
	AdvertiseAddr string         `kdl:"advertise-addr"`
	MongoConfig   *mongo.Config  `kdl:"mongo"`
	ConsulConfig  *consul.Config `kdl:"consul"`
	AmqpConfig    *amqp.Config   `kdl:"amqp"`

	stderr bool
}

// UseStderr keeps stdout free for crack results in the one-shot CLI.
func (c *CrackerConfig) UseStderr() bool {
	return c.stderr
}

func (c *CrackerConfig) StrategyType() (strategy.Type, error) {
	return strategy.ParseStrategyName(c.Strategy)
}

func (c *CrackerConfig) CacheOptions() strategy.CacheOptions {
	return strategy.CacheOptions{Size: c.CacheSize, TTL: c.CacheTTL}
}

// Validate fails before any record is loaded when the algorithm or the
// strategy is unusable.
func (c *CrackerConfig) Validate() error {
	if _, err := digest.New(c.Algorithm); err != nil {
		return err
	}
	typ, err := c.StrategyType()
	if err != nil {
		return err
	}
	if typ.NeedsRecord() && c.Record == "" && !c.MongoConfig.Enabled() {
		return errors.Errorf("strategy %s needs a record file or a mongo source", typ)
	}
	if !typ.NeedsRecord() && c.Passwords == "" {
		return errors.Errorf("strategy %s needs a passwords wordlist", typ)
	}
	return nil
}

func DefaultConfig() *CrackerConfig {
	return &CrackerConfig{
		Algorithm:     digest.DefaultAlgorithm,
		Record:        "record.json",
		Strategy:      strategy.DefaultStrategyStr(),
		CacheSize:     10_000,
		CacheTTL:      10 * time.Minute,
		SearchTimeout: 30 * time.Second,
		ApiServerAddr: "0.0.0.0",
		ServerPort:    8080,
		MongoConfig:   &mongo.Config{Database: "rainbow"},
		ConsulConfig: &consul.Config{
			Health: &consul.HealthConfig{
				Interval: "5s",
				Timeout:  "2s",
				Http:     consul.HealthPath,
			},
		},
		AmqpConfig: &amqp.Config{
			Username:         "guest",
			Password:         "guest",
			ReconnectTimeout: 5 * time.Second,
			PublisherConfig:  &amqp.PublisherConfig{RoutingKey: "crack.responses"},
			ConsumerConfig:   &amqp.ConsumerConfig{Queue: "crack.requests", Prefetch: 1, Durable: true},
		},
	}
}

func InitializeConfig(args []string) (*CrackerConfig, error) {
	return config.InitializeConfig[CrackerConfig](args, *DefaultConfig())
}

// InitializeCLIConfig is InitializeConfig for the one-shot cracker, which
// logs to stderr.
func InitializeCLIConfig(args []string) (*CrackerConfig, error) {
	cfg := *DefaultConfig()
	cfg.stderr = true
	return config.InitializeConfig[CrackerConfig](args, cfg)
}
