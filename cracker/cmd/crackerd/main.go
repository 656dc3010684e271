package main

import (
	"context"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/ykhdr/rainbow-hash/common/amqp"
	"github.com/ykhdr/rainbow-hash/common/consul"
	"github.com/ykhdr/rainbow-hash/cracker/config"
	"github.com/ykhdr/rainbow-hash/cracker/internal/hashcrack"
	crackernet "github.com/ykhdr/rainbow-hash/cracker/internal/net"
	"github.com/ykhdr/rainbow-hash/cracker/internal/server/api"
	"golang.org/x/sync/errgroup"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
)

const serviceName = "rainbow-cracker"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("cracker daemon failed")
	}
}

func run(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("crackerd", pflag.ContinueOnError)
	strategyName := fs.String("strategy", "", "scan, index or search")
	port := fs.Int("port", 0, "api server port")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.InitializeConfig(fs.Args())
	if err != nil {
		return errors.Wrap(err, "initialize config")
	}
	if fs.Changed("strategy") {
		cfg.Strategy = *strategyName
	}
	if fs.Changed("port") {
		cfg.ServerPort = *port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s, err := hashcrack.NewStrategy(ctx, cfg)
	if err != nil {
		return err
	}
	registry := api.NewRegistry()
	cracker := hashcrack.NewCracker(s, cfg.SearchTimeout, hashcrack.NewMetrics(registry))
	group, gCtx := errgroup.WithContext(ctx)

	if cfg.AmqpConfig.Enabled() {
		amqpConn, err := amqp.Dial(ctx, cfg.AmqpConfig)
		if err != nil {
			return errors.Wrap(err, "error initializing amqp connection")
		}
		defer func() { _ = amqpConn.Close() }()
		svc := hashcrack.NewService(cfg.AmqpConfig, cracker, amqpConn)
		group.Go(func() error {
			return svc.Start(gCtx)
		})
	}

	apiSrv := api.NewServer(net.JoinHostPort(cfg.ApiServerAddr, strconv.Itoa(cfg.ServerPort)), cracker, registry)
	group.Go(func() error {
		return apiSrv.Start(gCtx)
	})

	if cfg.ConsulConfig.Enabled() {
		deregister, err := register(cfg)
		if err != nil {
			return err
		}
		defer deregister()
	}

	if err := group.Wait(); err != nil {
		return err
	}
	log.Info().Msg("cracker daemon stopped")
	return nil
}

func register(cfg *config.CrackerConfig) (func(), error) {
	consulClient, err := consul.NewClient(cfg.ConsulConfig)
	if err != nil {
		return nil, err
	}
	addr, err := crackernet.AdvertiseAddr(cfg.AdvertiseAddr)
	if err != nil {
		return nil, errors.Wrap(err, "resolve advertised address")
	}
	id, err := consulClient.RegisterService(serviceName, addr, cfg.ServerPort)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := consulClient.DeregisterService(id); err != nil {
			log.Warn().Err(err).Msg("error deregister service in consul")
		}
	}, nil
}
