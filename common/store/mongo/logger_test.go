package mongo

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoggerInfoLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	l.Info(1, "connected", "host", "mongo:27017")
	l.Info(3, "ignored")

	out := buf.String()
	assert.Contains(t, out, `"message":"connected"`)
	assert.Contains(t, out, `"host":"mongo:27017"`)
	assert.Contains(t, out, `"domain":"mongo"`)
	assert.NotContains(t, out, "ignored")
}

func TestLoggerErrorOddArgs(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(zerolog.New(&buf))

	l.Error(errors.New("boom"), "command failed", "command")

	out := buf.String()
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"command":null`)
}

func TestConfigEnabled(t *testing.T) {
	var nilCfg *Config
	assert.False(t, nilCfg.Enabled())
	assert.False(t, (&Config{}).Enabled())
	assert.True(t, (&Config{ClientConfig: ClientConfig{URI: "mongodb://localhost"}}).Enabled())
}
