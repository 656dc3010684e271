package generator

import (
	"context"
	"strings"

	"github.com/ykhdr/rainbow-hash/pkg/set"
)

// SearchResult is the outcome of an exhaustive digest search. Complete is
// false when the search was cancelled before every password was tried.
type SearchResult struct {
	Matches  set.Set[string]
	Scanned  int
	Total    int
	Complete bool
}

// Search regenerates digests password by password and collects those that
// produce target. Cancellation is checked between passwords and ends the
// search with the matches found so far; it is never reported as an error.
// target is compared as lower-case hex.
func (g *Generator) Search(ctx context.Context, passwords, salts set.Set[string], target string) SearchResult {
	target = strings.ToLower(strings.TrimSpace(target))
	ordered := set.Sorted(passwords)
	res := SearchResult{Matches: set.New[string](), Total: len(ordered)}
	for _, password := range ordered {
		if ctx.Err() != nil {
			g.l.Info().
				Int("scanned", res.Scanned).
				Int("total", res.Total).
				Int("matches", res.Matches.Len()).
				Msg("search cancelled")
			return res
		}
		if g.builder.DigestsFor(password, salts).Has(target) {
			g.l.Debug().Str("password", password).Msg("match found")
			res.Matches.Add(password)
		}
		res.Scanned++
		g.progress(password, res.Scanned, res.Total)
	}
	res.Complete = true
	return res
}
