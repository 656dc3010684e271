package config

import (
	"github.com/pkg/errors"
	"github.com/ykhdr/rainbow-hash/common/config"
	"github.com/ykhdr/rainbow-hash/common/store/mongo"
	"github.com/ykhdr/rainbow-hash/pkg/digest"
)

type GeneratorConfig struct {
	config.LogConfig
	Algorithm   string        `kdl:"algorithm"`
	Passwords   string        `kdl:"passwords"`
	Salts       string        `kdl:"salts"`
	Output      string        `kdl:"output"`
	Workers     int           `kdl:"workers"`
	Encodings   []string      `kdl:"encodings"`
	MongoConfig *mongo.Config `kdl:"mongo"`
}

// Validate rejects an unusable configuration before any wordlist is read.
func (c *GeneratorConfig) Validate() error {
	if _, err := digest.New(c.Algorithm); err != nil {
		return err
	}
	if c.Passwords == "" {
		return errors.New("passwords wordlist is not configured")
	}
	if c.Output == "" && !c.MongoConfig.Enabled() {
		return errors.New("neither an output file nor a mongo store is configured")
	}
	return nil
}

func DefaultConfig() *GeneratorConfig {
	return &GeneratorConfig{
		Algorithm:   digest.DefaultAlgorithm,
		Passwords:   "passwords.txt",
		Salts:       "salts.txt",
		Output:      "record.json",
		MongoConfig: &mongo.Config{Database: "rainbow"},
	}
}

func InitializeConfig(args []string) (*GeneratorConfig, error) {
	return config.InitializeConfig[GeneratorConfig](args, *DefaultConfig())
}
