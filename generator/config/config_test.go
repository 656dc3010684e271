package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/rainbow-hash/pkg/digest"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "sha1", cfg.Algorithm)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Algorithm = "whirlpool"
	assert.ErrorIs(t, cfg.Validate(), digest.ErrUnsupportedAlgorithm)

	cfg = DefaultConfig()
	cfg.Passwords = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Output = ""
	assert.Error(t, cfg.Validate())
	cfg.MongoConfig.URI = "mongodb://mongo:27017"
	assert.NoError(t, cfg.Validate())
}

func TestInitializeConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.kdl")
	doc := "algorithm \"sha256\"\nworkers 3\nencodings \"utf-8\" \"utf-16le\"\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := InitializeConfig([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "sha256", cfg.Algorithm)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []string{"utf-8", "utf-16le"}, cfg.Encodings)
	assert.Equal(t, "record.json", cfg.Output)
}
