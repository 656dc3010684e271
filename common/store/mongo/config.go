package mongo

type ClientConfig struct {
	URI      string `kdl:"uri"`
	Username string `kdl:"username"`
	Password string `kdl:"password"`
}

type Config struct {
	ClientConfig
	Database string `kdl:"database"`
}

// Enabled reports whether a MongoDB deployment was configured at all.
func (c *Config) Enabled() bool {
	return c != nil && c.URI != ""
}
