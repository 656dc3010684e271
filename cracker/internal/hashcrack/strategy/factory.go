package strategy

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/rainbow-hash/pkg/generator"
	"github.com/ykhdr/rainbow-hash/pkg/record"
	"github.com/ykhdr/rainbow-hash/pkg/set"
	"strings"
	"time"
)

type Type int

const (
	ScanStrategyType Type = iota
	IndexStrategyType
	SearchStrategyType
)

const (
	scanStrategyName   = "scan"
	indexStrategyName  = "index"
	searchStrategyName = "search"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrMissingSource   = errors.New("strategy source not provided")
)

func (t Type) String() string {
	switch t {
	case IndexStrategyType:
		return indexStrategyName
	case SearchStrategyType:
		return searchStrategyName
	default:
		return scanStrategyName
	}
}

// NeedsRecord reports whether the strategy answers from a persisted record.
func (t Type) NeedsRecord() bool {
	return t != SearchStrategyType
}

// ParseStrategyName maps a configured name to its strategy. An empty name
// selects the default.
func ParseStrategyName(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return ParseStrategyName(DefaultStrategyStr())
	case scanStrategyName:
		return ScanStrategyType, nil
	case indexStrategyName:
		return IndexStrategyType, nil
	case searchStrategyName:
		return SearchStrategyType, nil
	default:
		return 0, errors.Wrapf(ErrUnknownStrategy, "%q", name)
	}
}

func DefaultStrategyStr() string {
	return indexStrategyName
}

// Sources carries what the strategies read from: the record for scan and
// index, the generator and wordlists for search.
type Sources struct {
	Record    *record.Record
	Generator *generator.Generator
	Passwords set.Set[string]
	Salts     set.Set[string]
}

type CacheOptions struct {
	Size int
	TTL  time.Duration
}

func NewStrategy(strategyType Type, src Sources) (Strategy, error) {
	switch strategyType {
	case SearchStrategyType:
		if src.Generator == nil {
			return nil, errors.Wrap(ErrMissingSource, "search strategy needs a generator")
		}
		return newSearchStrategy(log.Logger, src.Generator, src.Passwords, src.Salts), nil
	case IndexStrategyType:
		if src.Record == nil {
			return nil, errors.Wrap(ErrMissingSource, "index strategy needs a record")
		}
		return newIndexStrategy(log.Logger, src.Record), nil
	default:
		if src.Record == nil {
			return nil, errors.Wrap(ErrMissingSource, "scan strategy needs a record")
		}
		return newScanStrategy(log.Logger, src.Record), nil
	}
}

// WithCache wraps inner in a bounded result cache; a non-positive size
// returns inner unchanged.
func WithCache(inner Strategy, opts CacheOptions) Strategy {
	if opts.Size <= 0 {
		return inner
	}
	return newCachedStrategy(log.Logger, inner, opts.Size, opts.TTL)
}
