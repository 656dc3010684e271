package strategy

import (
	"context"
	"strings"
)

type CrackResult interface {
	// Found lists matching passwords in sorted order.
	Found() []string
	// Complete is false when the lookup was cut short and Found may be a subset.
	Complete() bool
}

type crackResult struct {
	found    []string
	complete bool
}

func (r *crackResult) Found() []string {
	return r.found
}

func (r *crackResult) Complete() bool {
	return r.complete
}

type Strategy interface {
	Crack(ctx context.Context, digest string, useSalts bool) CrackResult
}

// NormalizeDigest trims and lower-cases a digest as typed by a user.
func NormalizeDigest(digest string) string {
	return strings.ToLower(strings.TrimSpace(digest))
}
