package main

import (
	"context"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/ykhdr/rainbow-hash/common/store/mongo"
	"github.com/ykhdr/rainbow-hash/common/store/recordstore"
	"github.com/ykhdr/rainbow-hash/generator/config"
	"github.com/ykhdr/rainbow-hash/generator/internal/job"
	"github.com/ykhdr/rainbow-hash/pkg/record"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("generation failed")
	}
}

func run(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("generator", pflag.ContinueOnError)
	algorithm := fs.StringP("algorithm", "a", "", "digest algorithm")
	passwords := fs.StringP("passwords", "p", "", "passwords wordlist")
	salts := fs.StringP("salts", "s", "", "salts wordlist")
	output := fs.StringP("output", "o", "", "record file to write")
	workers := fs.IntP("workers", "w", 0, "hashing workers")
	encodings := fs.StringSlice("encodings", nil, "restrict to these encodings")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.InitializeConfig(fs.Args())
	if err != nil {
		return errors.Wrap(err, "initialize config")
	}
	if fs.Changed("algorithm") {
		cfg.Algorithm = *algorithm
	}
	if fs.Changed("passwords") {
		cfg.Passwords = *passwords
	}
	if fs.Changed("salts") {
		cfg.Salts = *salts
	}
	if fs.Changed("output") {
		cfg.Output = *output
	}
	if fs.Changed("workers") {
		cfg.Workers = *workers
	}
	if fs.Changed("encodings") {
		cfg.Encodings = *encodings
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var stores []record.Store
	if cfg.Output != "" {
		stores = append(stores, record.NewFileStore(cfg.Output))
	}
	if cfg.MongoConfig.Enabled() {
		client, db, err := mongo.Open(cfg.MongoConfig)
		if err != nil {
			return err
		}
		defer mongo.Disconnect(context.WithoutCancel(ctx), client)
		stores = append(stores, recordstore.NewMongoStore(db, cfg.Algorithm))
	}
	_, err = job.New(cfg, stores...).Run(ctx)
	return err
}
