// Package mongostore keeps books in a MongoDB collection, one document
// per owner.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	accounting "github.com/bumlambs-max/Accounting-2.0"
)

// Store implements accounting.Store on a single MongoDB collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// record is the stored document: the raw book snapshot keyed by owner.
type record struct {
	Key       string    `bson:"_id"`
	Book      []byte    `bson:"book"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Open connects to MongoDB and returns a store over the "books"
// collection of db. An empty db defaults to "farmbook".
func Open(ctx context.Context, uri, db string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	if db == "" {
		db = "farmbook"
	}
	return &Store{
		client: client,
		coll:   client.Database(db).Collection("books"),
	}, nil
}

// Push upserts the book document for key.
func (s *Store) Push(ctx context.Context, key string, data []byte) error {
	doc := record{Key: key, Book: data, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("push %q: %w", key, err)
	}
	return nil
}

// Pull retrieves the book stored for key. A missing document is
// reported as accounting.ErrNotFound.
func (s *Store) Pull(ctx context.Context, key string) ([]byte, error) {
	var doc record
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("pull %q: %w", key, accounting.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("pull %q: %w", key, err)
	}
	return doc.Book, nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
