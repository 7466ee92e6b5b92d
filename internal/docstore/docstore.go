// Package docstore implements interfaces.DocumentStore over MongoDB, the
// append-only sink for component G's telemetry snapshots and component H's
// "latest readings" reads.
package docstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
)

// Store wraps one Mongo database handle. Collections are created implicitly
// on first insert, matching the append-only, schema-flexible use spec.md
// calls for on telemetry snapshots.
type Store struct {
	db *mongo.Database
}

// Connect dials uri and pings it before returning, so callers fail fast at
// startup rather than on the first snapshot insert.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, common.Wrap(common.PermanentSystem, "docstore: connect", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, common.Wrap(common.Transient, "docstore: ping", err)
	}
	return &Store{db: client.Database(database)}, nil
}

// InsertSnapshot appends doc to collection, never mutating or upserting:
// every scrape is a new point-in-time record.
func (s *Store) InsertSnapshot(ctx context.Context, collection string, doc any) error {
	_, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return common.Wrap(common.Transient, fmt.Sprintf("docstore: insert into %s", collection), err)
	}
	return nil
}

// LatestSnapshots returns up to limit documents from collection, newest
// first by Mongo's natural insertion order.
func (s *Store) LatestSnapshots(ctx context.Context, collection string, limit int) ([]map[string]any, error) {
	opts := options.Find().SetSort(bson.D{{Key: "$natural", Value: -1}}).SetLimit(int64(limit))
	cur, err := s.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, common.Wrap(common.Transient, fmt.Sprintf("docstore: find in %s", collection), err)
	}
	defer cur.Close(ctx)

	var out []map[string]any
	for cur.Next(ctx) {
		var doc map[string]any
		if err := cur.Decode(&doc); err != nil {
			return nil, common.Wrap(common.PermanentInput, "docstore: decode", err)
		}
		out = append(out, doc)
	}
	return out, cur.Err()
}
