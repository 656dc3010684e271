package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/ykhdr/rainbow-hash/common/internal/kdl"
	"github.com/ykhdr/rainbow-hash/common/resource"
)

const (
	defaultConfigPath = "./config/config.kdl"
	configPathEnv     = "RAINBOW_CONFIG"
)

// InitializeConfig loads the KDL config named by the first argument, by
// RAINBOW_CONFIG, or by the default path, in that order. A missing default
// file leaves defaultCfg untouched; a missing explicit file is an error.
func InitializeConfig[T any](args []string, defaultCfg T) (*T, error) {
	_ = godotenv.Load()
	configPath, explicit := resolvePath(args)
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		defaultCfg, err = kdl.Decode(data, defaultCfg)
		if err != nil {
			return nil, errors.Wrap(err, "unmarshal kdl")
		}
	case explicit || !os.IsNotExist(err):
		return nil, resource.Unavailable(configPath, err)
	}
	setupLogger(&defaultCfg)
	return &defaultCfg, nil
}

func resolvePath(args []string) (string, bool) {
	if len(args) > 0 && args[0] != "" {
		return args[0], true
	}
	if p := os.Getenv(configPathEnv); p != "" {
		return p, true
	}
	return defaultConfigPath, false
}
