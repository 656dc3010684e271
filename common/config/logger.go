package config

import (
	"os"

	"github.com/ykhdr/rainbow-hash/common/logging"
)

type LogConfig struct {
	LogLevel string `kdl:"log-level"`
}

func (c *LogConfig) GetLogLevel() string {
	return c.LogLevel
}

type hasLogLevel interface {
	GetLogLevel() string
}

type hasLogOutput interface {
	UseStderr() bool
}

func setupLogger(cfg any) {
	var logLevel logging.Level
	logCfg, ok := cfg.(hasLogLevel)
	if !ok {
		logLevel = logging.InfoLevel
	} else {
		logLevel = logging.ParseLevel(logCfg.GetLogLevel())
	}
	if out, ok := cfg.(hasLogOutput); ok && out.UseStderr() {
		logging.SetupWriter(logLevel, os.Stderr)
		return
	}
	logging.Setup(logLevel)
}
