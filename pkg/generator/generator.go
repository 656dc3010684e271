// Package generator expands a password wordlist into digest sets and
// assembles the salted and unsalted record.
package generator

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/rainbow-hash/pkg/record"
	"github.com/ykhdr/rainbow-hash/pkg/set"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is told how many of total passwords have been processed.
type ProgressFunc func(password string, done, total int)

type Config struct {
	Workers  int
	Progress ProgressFunc
}

type Generator struct {
	l        zerolog.Logger
	builder  *Builder
	workers  int
	progress ProgressFunc
}

type entry struct {
	password string
	digests  record.DigestSet
}

func New(builder *Builder, cfg Config) *Generator {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	progress := cfg.Progress
	if progress == nil {
		progress = func(string, int, int) {}
	}
	return &Generator{
		builder:  builder,
		workers:  workers,
		progress: progress,
		l: log.With().
			Str("domain", "generator").
			Str("algorithm", builder.Algorithm()).
			Logger(),
	}
}

// Generate maps every password to its digest set under salts. Passwords are
// handed to workers in sorted order; results are merged by a single
// collector. On cancellation the mapping built so far is returned together
// with the context error.
func (g *Generator) Generate(ctx context.Context, passwords, salts set.Set[string]) (record.Mapping, error) {
	ordered := set.Sorted(passwords)
	result := make(record.Mapping, len(ordered))
	if len(ordered) == 0 {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return result, errors.Wrap(err, "generation interrupted")
	}
	salted := salts.Len() > 0
	g.l.Debug().Int("passwords", len(ordered)).Int("salts", salts.Len()).Msg("generation started")

	grp, gCtx := errgroup.WithContext(ctx)
	jobs := make(chan string)
	entries := make(chan entry)

	grp.Go(func() error {
		defer close(jobs)
		for _, password := range ordered {
			select {
			case jobs <- password:
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < min(g.workers, len(ordered)); i++ {
		wg.Add(1)
		grp.Go(func() error {
			defer wg.Done()
			for password := range jobs {
				g.l.Debug().Str("password", password).Bool("salted", salted).Msg("hashing")
				e := entry{password: password, digests: g.builder.DigestsFor(password, salts)}
				select {
				case entries <- e:
				case <-gCtx.Done():
					return gCtx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(entries)
	}()

	for e := range entries {
		result[e.password] = e.digests
		g.progress(e.password, len(result), len(ordered))
	}
	err := grp.Wait()
	if err == nil && len(result) < len(ordered) {
		err = ctx.Err()
	}
	if err != nil {
		g.l.Warn().Err(err).Int("done", len(result)).Int("total", len(ordered)).Msg("generation interrupted")
		return result, errors.Wrap(err, "generation interrupted")
	}
	g.l.Debug().Int("passwords", len(result)).Bool("salted", salted).Msg("generation complete")
	return result, nil
}

// BuildRecord runs Generate once without salts and once with them. A
// cancelled pass yields no record.
func (g *Generator) BuildRecord(ctx context.Context, passwords, salts set.Set[string]) (*record.Record, error) {
	unsalted, err := g.Generate(ctx, passwords, nil)
	if err != nil {
		return nil, errors.Wrap(err, "unsalted pass")
	}
	salted, err := g.Generate(ctx, passwords, salts)
	if err != nil {
		return nil, errors.Wrap(err, "salted pass")
	}
	g.l.Info().Int("passwords", len(unsalted)).Int("salts", salts.Len()).Msg("record built")
	return record.New(unsalted, salted), nil
}
