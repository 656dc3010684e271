package consul

import (
	"fmt"
	"github.com/hashicorp/consul/api"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// HealthPath is the endpoint the registered check polls unless the config
// names another URL.
const HealthPath = "/api/health"

type Client interface {
	RegisterService(serviceName, address string, port int) (string, error)
	DeregisterService(serviceID string) error
}

type client struct {
	l      zerolog.Logger
	cfg    *Config
	client *api.Client
}

func NewClient(cfg *Config) (Client, error) {
	cl, err := api.NewClient(cfg.toApiConfig())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create consul client")
	}
	return &client{
		l:      log.With().Str("domain", "consul").Logger(),
		client: cl,
		cfg:    cfg,
	}, nil
}

func (c *client) RegisterService(serviceName, address string, port int) (string, error) {
	reg := registration(c.cfg, serviceName, address, port)
	if err := c.client.Agent().ServiceRegister(reg); err != nil {
		return "", errors.Wrapf(err, "failed to register %s", reg.ID)
	}
	c.l.Info().Str("id", reg.ID).Str("check", reg.Check.HTTP).Msg("service registered")
	return reg.ID, nil
}

func (c *client) DeregisterService(serviceID string) error {
	if err := c.client.Agent().ServiceDeregister(serviceID); err != nil {
		return errors.Wrapf(err, "failed to deregister %s", serviceID)
	}
	c.l.Info().Str("id", serviceID).Msg("service deregistered")
	return nil
}

func registration(cfg *Config, serviceName, address string, port int) *api.AgentServiceRegistration {
	return &api.AgentServiceRegistration{
		ID:      fmt.Sprintf("%s-%s:%d", serviceName, address, port),
		Name:    serviceName,
		Address: address,
		Port:    port,
		Check:   cfg.Health.toApiConfig(fmt.Sprintf("http://%s:%d", address, port)),
	}
}
