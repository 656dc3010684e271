package strategy

import (
	"context"
	"github.com/rs/zerolog"
	"github.com/ykhdr/rainbow-hash/pkg/index"
	"github.com/ykhdr/rainbow-hash/pkg/record"
	"github.com/ykhdr/rainbow-hash/pkg/set"
)

// lookupStrategy answers from a loaded record through a reverse index.
type lookupStrategy struct {
	l     zerolog.Logger
	index index.ReverseIndex
}

func newScanStrategy(logger zerolog.Logger, r *record.Record) *lookupStrategy {
	return newLookupStrategy(logger, scanStrategyName, index.NewScan(r))
}

func newIndexStrategy(logger zerolog.Logger, r *record.Record) *lookupStrategy {
	inv := index.NewInverted(r)
	s := newLookupStrategy(logger, indexStrategyName, inv)
	s.l.Debug().
		Int("unsalted-digests", inv.Digests(record.Unsalted)).
		Int("salted-digests", inv.Digests(record.Salted)).
		Msg("inverted index built")
	return s
}

func newLookupStrategy(logger zerolog.Logger, name string, idx index.ReverseIndex) *lookupStrategy {
	return &lookupStrategy{
		l: logger.
			With().
			Str("domain", "hashcrack").
			Str("type", "strategy").
			Str("strategy", name).
			Logger(),
		index: idx,
	}
}

func (s *lookupStrategy) Crack(_ context.Context, digest string, useSalts bool) CrackResult {
	digest = NormalizeDigest(digest)
	mode := record.ModeFor(useSalts)
	found := set.Sorted(s.index.Lookup(mode, digest))
	s.l.Debug().
		Str("hash", digest).
		Stringer("mode", mode).
		Int("found", len(found)).
		Msg("cracking hash")
	return &crackResult{found: found, complete: true}
}
