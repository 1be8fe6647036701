// Package store persists validated content as JSON documents. Entities stay
// schemaless at the storage layer: the typed model is authoritative and the
// backends only index the fields the admin surfaces filter on.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lexforge/lexforge/internal/domain"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Collection names.
const (
	CollectionQuestions = "questions"
	CollectionAssets    = "assets"
)

// Document is one stored entity plus the indexed fields backends filter on.
// Body holds the canonical JSON form; Kind is the discriminator tag and Ref
// is the asset a question points at, empty for standalone kinds.
type Document struct {
	ID         string
	Collection string
	Kind       string
	Ref        string
	Tags       []string
	Body       json.RawMessage
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter narrows a Query. Zero values match everything.
type Filter struct {
	Kind  string
	Ref   string
	Tag   string
	Limit int
}

// DocumentStore is the persistence contract shared by all backends.
type DocumentStore interface {
	// Put inserts or updates a document. An empty ID gets a fresh one;
	// the stored ID is returned either way.
	Put(ctx context.Context, doc *Document) (string, error)

	// Get retrieves one document by collection and ID.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Query returns documents matching the filter, newest first.
	Query(ctx context.Context, collection string, f Filter) ([]*Document, error)

	// Delete removes one document. Deleting a missing ID is ErrNotFound.
	Delete(ctx context.Context, collection, id string) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	Close() error
}

// NewQuestionDocument wraps a validated question for storage.
func NewQuestionDocument(q domain.AnyQuestion) (*Document, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("marshal question: %w", err)
	}
	base := q.Base()
	return &Document{
		ID:         uuid.NewString(),
		Collection: CollectionQuestions,
		Kind:       string(base.QuestionType),
		Ref:        domain.ContentRef(q),
		Body:       body,
		CreatedAt:  base.CreatedAt,
		UpdatedAt:  base.UpdatedAt,
	}, nil
}

// NewAssetDocument wraps a validated asset for storage. The asset's own ID
// becomes the document ID so question references resolve by lookup.
func NewAssetDocument(a domain.AnyAsset) (*Document, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal asset: %w", err)
	}
	base := a.Base()
	return &Document{
		ID:         base.AssetID,
		Collection: CollectionAssets,
		Kind:       string(base.AssetType),
		Tags:       base.Tags,
		Body:       body,
		CreatedAt:  base.CreatedAt,
		UpdatedAt:  base.UpdatedAt,
	}, nil
}
