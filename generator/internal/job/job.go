// Package job runs one generation: wordlists in, a complete record out to
// every configured store.
package job

import (
	"context"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/rainbow-hash/generator/config"
	"github.com/ykhdr/rainbow-hash/pkg/encoder"
	"github.com/ykhdr/rainbow-hash/pkg/generator"
	"github.com/ykhdr/rainbow-hash/pkg/record"
	"github.com/ykhdr/rainbow-hash/pkg/wordlist"
)

type Job struct {
	l      zerolog.Logger
	cfg    *config.GeneratorConfig
	stores []record.Store
}

func New(cfg *config.GeneratorConfig, stores ...record.Store) *Job {
	return &Job{
		l:      log.With().Str("domain", "job").Str("algorithm", cfg.Algorithm).Logger(),
		cfg:    cfg,
		stores: stores,
	}
}

// Run builds the record and saves it. Nothing is saved when ctx is
// cancelled before the record is complete.
func (j *Job) Run(ctx context.Context) (*record.Record, error) {
	gen, err := j.newGenerator()
	if err != nil {
		return nil, err
	}
	passwords, err := wordlist.Load(j.cfg.Passwords)
	if err != nil {
		return nil, errors.Wrap(err, "load passwords")
	}
	salts, err := wordlist.LoadOptional(j.cfg.Salts)
	if err != nil {
		return nil, errors.Wrap(err, "load salts")
	}
	j.l.Info().
		Int("passwords", passwords.Len()).
		Int("salts", salts.Len()).
		Msg("generation started")

	rec, err := gen.BuildRecord(ctx, passwords, salts)
	if err != nil {
		return nil, err
	}
	for _, store := range j.stores {
		if err := store.Save(ctx, rec); err != nil {
			return nil, errors.Wrap(err, "save record")
		}
	}
	j.l.Info().Int("stores", len(j.stores)).Msg("record saved")
	return rec, nil
}

func (j *Job) newGenerator() (*generator.Generator, error) {
	registry := encoder.DefaultRegistry()
	if len(j.cfg.Encodings) > 0 {
		var err error
		if registry, err = registry.Subset(j.cfg.Encodings...); err != nil {
			return nil, err
		}
	}
	builder, err := generator.NewBuilderFor(j.cfg.Algorithm, registry)
	if err != nil {
		return nil, err
	}
	j.l.Debug().Strs("encodings", registry.Names()).Msg("encodings selected")
	return generator.New(builder, generator.Config{
		Workers:  j.cfg.Workers,
		Progress: j.logProgress,
	}), nil
}

// logProgress reports every tenth of a pass.
func (j *Job) logProgress(_ string, done, total int) {
	step := max(total/10, 1)
	if done%step == 0 || done == total {
		j.l.Info().Int("done", done).Int("total", total).Msg("generation progress")
	}
}
