package strategy

import (
	"context"
	"github.com/maypok86/otter/v2"
	"github.com/rs/zerolog"
	"time"
)

type cacheKey struct {
	digest   string
	useSalts bool
}

// cachedStrategy memoises complete results of an inner strategy. Partial
// results are never cached so a later, uninterrupted query can finish them.
type cachedStrategy struct {
	l     zerolog.Logger
	inner Strategy
	cache *otter.Cache[cacheKey, CrackResult]
}

func newCachedStrategy(logger zerolog.Logger, inner Strategy, size int, ttl time.Duration) *cachedStrategy {
	opts := &otter.Options[cacheKey, CrackResult]{
		MaximumSize: size,
	}
	if ttl > 0 {
		opts.ExpiryCalculator = otter.ExpiryWriting[cacheKey, CrackResult](ttl)
	}
	return &cachedStrategy{
		l: logger.
			With().
			Str("domain", "hashcrack").
			Str("type", "strategy").
			Str("strategy", "cached").
			Logger(),
		inner: inner,
		cache: otter.Must(opts),
	}
}

func (s *cachedStrategy) Crack(ctx context.Context, digest string, useSalts bool) CrackResult {
	key := cacheKey{digest: NormalizeDigest(digest), useSalts: useSalts}
	if res, ok := s.cache.GetIfPresent(key); ok {
		s.l.Debug().Str("hash", key.digest).Msg("cache hit")
		return res
	}
	res := s.inner.Crack(ctx, key.digest, useSalts)
	if res.Complete() {
		s.cache.Set(key, res)
	}
	return res
}
