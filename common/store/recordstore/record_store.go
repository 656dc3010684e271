// Package recordstore mirrors a record into MongoDB, one document per
// (salting mode, password) pair plus a manifest describing the run.
package recordstore

import (
	"context"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/rainbow-hash/pkg/record"
	"github.com/ykhdr/rainbow-hash/pkg/set"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"sort"
	"time"
)

const (
	RecordCollection   = "records"
	ManifestCollection = "record_manifest"

	manifestID      = "record"
	insertBatchSize = 1000
)

type entryDocument struct {
	ID       string   `bson:"_id"`
	Mode     string   `bson:"mode"`
	Password string   `bson:"password"`
	Digests  []string `bson:"digests"`
}

type manifestDocument struct {
	ID        string    `bson:"_id"`
	Algorithm string    `bson:"algorithm"`
	Modes     []string  `bson:"modes"`
	Entries   int       `bson:"entries"`
	CreatedAt time.Time `bson:"created_at"`
}

type MongoStore struct {
	l         zerolog.Logger
	database  *mongo.Database
	algorithm string
}

func NewMongoStore(database *mongo.Database, algorithm string) *MongoStore {
	return &MongoStore{
		l:         log.With().Str("domain", "recordstore").Logger(),
		database:  database,
		algorithm: algorithm,
	}
}

// Save drops the manifest first and writes it last: a save interrupted in
// between leaves a store that Load reports as corrupt.
func (s *MongoStore) Save(ctx context.Context, r *record.Record) error {
	manifests := s.database.Collection(ManifestCollection)
	entries := s.database.Collection(RecordCollection)
	if _, err := manifests.DeleteOne(ctx, bson.M{"_id": manifestID}); err != nil {
		return errors.Wrap(err, "error deleting record manifest")
	}
	if _, err := entries.DeleteMany(ctx, bson.M{}); err != nil {
		return errors.Wrap(err, "error deleting record entries")
	}
	docs := toDocuments(r)
	for start := 0; start < len(docs); start += insertBatchSize {
		end := min(start+insertBatchSize, len(docs))
		batch := make([]any, 0, end-start)
		for _, doc := range docs[start:end] {
			batch = append(batch, doc)
		}
		if _, err := entries.InsertMany(ctx, batch); err != nil {
			return errors.Wrap(err, "error saving record entries")
		}
	}
	manifest := newManifest(s.algorithm, len(docs))
	opts := options.Replace().SetUpsert(true)
	if _, err := manifests.ReplaceOne(ctx, bson.M{"_id": manifestID}, manifest, opts); err != nil {
		return errors.Wrap(err, "error saving record manifest")
	}
	s.l.Info().
		Int("entries", len(docs)).
		Str("algorithm", s.algorithm).
		Msg("record saved to MongoDB")
	return nil
}

func (s *MongoStore) Load(ctx context.Context) (*record.Record, error) {
	var manifest manifestDocument
	err := s.database.Collection(ManifestCollection).FindOne(ctx, bson.M{"_id": manifestID}).Decode(&manifest)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrap(record.ErrCorruptRecord, "missing record manifest")
		}
		return nil, errors.Wrap(err, "error loading record manifest")
	}
	cursor, err := s.database.Collection(RecordCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "error loading record entries")
	}
	defer func() { _ = cursor.Close(ctx) }()
	var docs []entryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "error decoding record entries")
	}
	if manifest.Algorithm != "" && s.algorithm != "" && manifest.Algorithm != s.algorithm {
		s.l.Warn().
			Str("stored", manifest.Algorithm).
			Str("configured", s.algorithm).
			Msg("record was generated with a different algorithm")
	}
	return fromDocuments(&manifest, docs)
}

func newManifest(algorithm string, entries int) *manifestDocument {
	modes := make([]string, 0, len(record.Modes))
	for _, m := range record.Modes {
		modes = append(modes, m.String())
	}
	return &manifestDocument{
		ID:        manifestID,
		Algorithm: algorithm,
		Modes:     modes,
		Entries:   entries,
		CreatedAt: time.Now().UTC(),
	}
}

func documentID(mode record.SaltingMode, password string) string {
	return mode.String() + ":" + password
}

func toDocuments(r *record.Record) []entryDocument {
	docs := make([]entryDocument, 0, r.Passwords(record.Unsalted)+r.Passwords(record.Salted))
	for _, mode := range record.Modes {
		mapping := r.Mapping(mode)
		passwords := make([]string, 0, len(mapping))
		for password := range mapping {
			passwords = append(passwords, password)
		}
		sort.Strings(passwords)
		for _, password := range passwords {
			docs = append(docs, entryDocument{
				ID:       documentID(mode, password),
				Mode:     mode.String(),
				Password: password,
				Digests:  set.Sorted(mapping[password]),
			})
		}
	}
	return docs
}

func fromDocuments(manifest *manifestDocument, docs []entryDocument) (*record.Record, error) {
	present := set.New(manifest.Modes...)
	for _, mode := range record.Modes {
		if !present.Has(mode.String()) {
			return nil, errors.Wrapf(record.ErrCorruptRecord, "manifest lacks %q mode", mode)
		}
	}
	if manifest.Entries != len(docs) {
		return nil, errors.Wrapf(record.ErrCorruptRecord, "manifest lists %d entries, found %d", manifest.Entries, len(docs))
	}
	r := record.New(nil, nil)
	for _, doc := range docs {
		mode, err := record.ParseSaltingMode(doc.Mode)
		if err != nil {
			return nil, errors.Wrapf(record.ErrCorruptRecord, "entry %s: %v", doc.ID, err)
		}
		mapping := r.Mapping(mode)
		if _, dup := mapping[doc.Password]; dup {
			return nil, errors.Wrapf(record.ErrCorruptRecord, "duplicate entry for %s", doc.ID)
		}
		mapping[doc.Password] = set.New(doc.Digests...)
	}
	return r, nil
}
