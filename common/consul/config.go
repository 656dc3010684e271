package consul

import (
	"github.com/hashicorp/consul/api"
	"strings"
)

type HealthConfig struct {
	Interval string `kdl:"interval"`
	Timeout  string `kdl:"timeout"`
	Http     string `kdl:"http"`
	// DeregisterAfter removes a service that stayed critical this long.
	DeregisterAfter string `kdl:"deregister-after"`
}

// toApiConfig builds the HTTP check. A relative Http path is resolved
// against baseURL; an empty one polls HealthPath.
func (c *HealthConfig) toApiConfig(baseURL string) *api.AgentServiceCheck {
	if c == nil {
		c = &HealthConfig{}
	}
	check := &api.AgentServiceCheck{
		HTTP:                           c.Http,
		Timeout:                        c.Timeout,
		Interval:                       c.Interval,
		DeregisterCriticalServiceAfter: c.DeregisterAfter,
	}
	switch {
	case check.HTTP == "":
		check.HTTP = baseURL + HealthPath
	case strings.HasPrefix(check.HTTP, "/"):
		check.HTTP = baseURL + check.HTTP
	}
	if check.Interval == "" {
		check.Interval = "10s"
	}
	return check
}

type Config struct {
	Address string        `kdl:"address"`
	Health  *HealthConfig `kdl:"health"`
}

// Enabled reports whether service registration was configured.
func (c *Config) Enabled() bool {
	return c != nil && c.Address != ""
}

func (c *Config) toApiConfig() *api.Config {
	cfg := api.DefaultConfig()
	cfg.Address = c.Address
	return cfg
}
