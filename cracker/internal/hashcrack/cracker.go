package hashcrack

import (
	"context"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/rainbow-hash/cracker/internal/hashcrack/strategy"
	"github.com/ykhdr/rainbow-hash/pkg/messages"
	"github.com/ykhdr/rainbow-hash/pkg/record"
	"time"
)

// Cracker answers crack requests with a strategy. Both the HTTP API and the
// queue consumer go through it.
type Cracker struct {
	l        zerolog.Logger
	strategy strategy.Strategy
	timeout  time.Duration
	metrics  *Metrics
}

func NewCracker(s strategy.Strategy, timeout time.Duration, metrics *Metrics) *Cracker {
	return &Cracker{
		l:        log.With().Str("domain", "hashcrack").Logger(),
		strategy: s,
		timeout:  timeout,
		metrics:  metrics,
	}
}

// Crack never fails: no match yields a response carrying
// messages.NotFoundMessage, and a query cut short by ctx or the timeout is
// answered with Complete unset.
func (c *Cracker) Crack(ctx context.Context, req *messages.CrackHashRequest) *messages.CrackHashResponse {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	normalized := *req
	normalized.Hash = strategy.NormalizeDigest(req.Hash)
	mode := record.ModeFor(req.UseSalts).String()

	start := time.Now()
	res := c.strategy.Crack(ctx, normalized.Hash, req.UseSalts)
	c.metrics.observe(mode, outcome(res), time.Since(start))

	c.l.Debug().
		Str("req-id", req.RequestId).
		Str("hash", normalized.Hash).
		Str("mode", mode).
		Strs("found", res.Found()).
		Bool("complete", res.Complete()).
		Msg("hash cracked")
	return messages.NewCrackHashResponse(&normalized, mode, res.Found(), res.Complete())
}

func outcome(res strategy.CrackResult) string {
	switch {
	case !res.Complete():
		return outcomePartial
	case len(res.Found()) == 0:
		return outcomeNotFound
	default:
		return outcomeFound
	}
}

// Lines renders a response for a terminal: one password per line, or the
// not-found sentinel.
func Lines(resp *messages.CrackHashResponse) []string {
	if len(resp.Found) == 0 {
		return []string{messages.NotFoundMessage}
	}
	return resp.Found
}
