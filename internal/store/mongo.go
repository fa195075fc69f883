package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "collections"

type mongoDocument struct {
	Name      string    `bson:"_id"`
	Document  string    `bson:"document"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps each collection as one document keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))

	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(mongoCollection),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context, collection string, dst any) error {
	var doc mongoDocument

	err := s.coll.FindOne(ctx, bson.M{"_id": collection}).Decode(&doc)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", collection, err)
	}

	if err := json.Unmarshal([]byte(doc.Document), dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, collection, err)
	}

	return nil
}

func (s *MongoStore) Save(ctx context.Context, collection string, v any) error {
	data, err := json.Marshal(v)

	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", collection, err)
	}

	doc := mongoDocument{
		Name:      collection,
		Document:  string(data),
		UpdatedAt: time.Now(),
	}

	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": collection}, doc, options.Replace().SetUpsert(true))

	if err != nil {
		return fmt.Errorf("failed to save %s: %w", collection, err)
	}

	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.client.Disconnect(ctx)
}
