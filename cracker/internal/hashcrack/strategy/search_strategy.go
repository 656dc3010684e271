package strategy

import (
	"context"
	"github.com/rs/zerolog"
	"github.com/ykhdr/rainbow-hash/pkg/generator"
	"github.com/ykhdr/rainbow-hash/pkg/set"
)

// searchStrategy regenerates digests from the wordlists for every query
// instead of reading a record. It honours ctx and may return a partial
// result.
type searchStrategy struct {
	l         zerolog.Logger
	generator *generator.Generator
	passwords set.Set[string]
	salts     set.Set[string]
}

func newSearchStrategy(logger zerolog.Logger, g *generator.Generator, passwords, salts set.Set[string]) *searchStrategy {
	return &searchStrategy{
		l: logger.
			With().
			Str("domain", "hashcrack").
			Str("type", "strategy").
			Str("strategy", searchStrategyName).
			Logger(),
		generator: g,
		passwords: passwords,
		salts:     salts,
	}
}

func (s *searchStrategy) Crack(ctx context.Context, digest string, useSalts bool) CrackResult {
	digest = NormalizeDigest(digest)
	var salts set.Set[string]
	if useSalts {
		salts = s.salts
	}
	res := s.generator.Search(ctx, s.passwords, salts, digest)
	s.l.Debug().
		Str("hash", digest).
		Bool("salted", useSalts).
		Int("scanned", res.Scanned).
		Int("total", res.Total).
		Bool("complete", res.Complete).
		Msg("search finished")
	return &crackResult{found: set.Sorted(res.Matches), complete: res.Complete}
}
