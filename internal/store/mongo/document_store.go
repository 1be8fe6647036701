// Package mongo implements the document store on MongoDB. Each Document
// maps to one BSON document; the body stays raw JSON so the stored form is
// identical across backends.
package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lexforge/lexforge/internal/store"
)

var _ store.DocumentStore = (*DocumentStore)(nil)

type mongoDocument struct {
	ID        string    `bson:"_id"`
	Kind      string    `bson:"kind"`
	Ref       string    `bson:"ref"`
	Tags      []string  `bson:"tags"`
	Body      string    `bson:"body"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// DocumentStore implements document persistence backed by MongoDB. Each
// store collection maps to a Mongo collection of the same name.
type DocumentStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to MongoDB and selects the database.
func Open(ctx context.Context, uri, database string) (*DocumentStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &DocumentStore{client: client, db: client.Database(database)}, nil
}

// Put inserts or updates a document, minting an ID when the caller left it
// empty.
func (s *DocumentStore) Put(ctx context.Context, doc *store.Document) (string, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	mdoc := mongoDocument{
		ID:        doc.ID,
		Kind:      doc.Kind,
		Ref:       doc.Ref,
		Tags:      doc.Tags,
		Body:      string(doc.Body),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	_, err := s.db.Collection(doc.Collection).ReplaceOne(ctx,
		bson.M{"_id": doc.ID}, mdoc, options.Replace().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("upsert document: %w", err)
	}
	return doc.ID, nil
}

// Get retrieves a document by collection and ID.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	var mdoc mongoDocument
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&mdoc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}
	return fromMongo(collection, &mdoc), nil
}

// Query returns documents matching the filter, newest first.
func (s *DocumentStore) Query(ctx context.Context, collection string, f store.Filter) ([]*store.Document, error) {
	query := bson.M{}
	if f.Kind != "" {
		query["kind"] = f.Kind
	}
	if f.Ref != "" {
		query["ref"] = f.Ref
	}
	if f.Tag != "" {
		query["tags"] = f.Tag
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cursor, err := s.db.Collection(collection).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*store.Document
	for cursor.Next(ctx) {
		var mdoc mongoDocument
		if err := cursor.Decode(&mdoc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		docs = append(docs, fromMongo(collection, &mdoc))
	}
	return docs, cursor.Err()
}

// Delete removes a document.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
	}
	return nil
}

// Ping verifies connectivity.
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *DocumentStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func fromMongo(collection string, mdoc *mongoDocument) *store.Document {
	return &store.Document{
		ID:         mdoc.ID,
		Collection: collection,
		Kind:       mdoc.Kind,
		Ref:        mdoc.Ref,
		Tags:       mdoc.Tags,
		Body:       json.RawMessage(mdoc.Body),
		CreatedAt:  mdoc.CreatedAt,
		UpdatedAt:  mdoc.UpdatedAt,
	}
}
