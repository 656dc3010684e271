package hashcrack

import (
	"context"
	"github.com/pkg/errors"
	"github.com/ykhdr/rainbow-hash/common/store/mongo"
	"github.com/ykhdr/rainbow-hash/common/store/recordstore"
	"github.com/ykhdr/rainbow-hash/cracker/config"
	"github.com/ykhdr/rainbow-hash/cracker/internal/hashcrack/strategy"
	"github.com/ykhdr/rainbow-hash/pkg/encoder"
	"github.com/ykhdr/rainbow-hash/pkg/generator"
	"github.com/ykhdr/rainbow-hash/pkg/record"
	"github.com/ykhdr/rainbow-hash/pkg/wordlist"
)

// LoadRecord reads the record from MongoDB when a mongo source is
// configured and from the JSON record file otherwise.
func LoadRecord(ctx context.Context, cfg *config.CrackerConfig) (*record.Record, error) {
	if cfg.MongoConfig.Enabled() {
		client, db, err := mongo.Open(cfg.MongoConfig)
		if err != nil {
			return nil, err
		}
		defer mongo.Disconnect(context.WithoutCancel(ctx), client)
		return recordstore.NewMongoStore(db, cfg.Algorithm).Load(ctx)
	}
	return record.NewFileStore(cfg.Record).Load(ctx)
}

// NewStrategy assembles the configured strategy together with whatever it
// reads from, wrapped in the result cache.
func NewStrategy(ctx context.Context, cfg *config.CrackerConfig) (strategy.Strategy, error) {
	typ, err := cfg.StrategyType()
	if err != nil {
		return nil, err
	}
	var src strategy.Sources
	if typ.NeedsRecord() {
		if src.Record, err = LoadRecord(ctx, cfg); err != nil {
			return nil, errors.Wrap(err, "load record")
		}
	} else {
		if src.Generator, err = newGenerator(cfg); err != nil {
			return nil, err
		}
		if src.Passwords, err = wordlist.Load(cfg.Passwords); err != nil {
			return nil, err
		}
		if src.Salts, err = wordlist.LoadOptional(cfg.Salts); err != nil {
			return nil, err
		}
	}
	s, err := strategy.NewStrategy(typ, src)
	if err != nil {
		return nil, err
	}
	return strategy.WithCache(s, cfg.CacheOptions()), nil
}

func newGenerator(cfg *config.CrackerConfig) (*generator.Generator, error) {
	registry := encoder.DefaultRegistry()
	if len(cfg.Encodings) > 0 {
		var err error
		if registry, err = registry.Subset(cfg.Encodings...); err != nil {
			return nil, err
		}
	}
	builder, err := generator.NewBuilderFor(cfg.Algorithm, registry)
	if err != nil {
		return nil, err
	}
	return generator.New(builder, generator.Config{Workers: 1}), nil
}
