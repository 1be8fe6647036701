package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/lexforge/lexforge/internal/store"
)

var _ store.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements document persistence backed by SQLite.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new SQLite-backed document store.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Put inserts or updates a document, minting an ID when the caller left it
// empty.
func (s *DocumentStore) Put(ctx context.Context, doc *store.Document) (string, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	tags, err := json.Marshal(doc.Tags)
	if err != nil {
		return "", fmt.Errorf("marshal tags: %w", err)
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, collection, kind, ref, tags, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			kind=excluded.kind,
			ref=excluded.ref,
			tags=excluded.tags,
			body=excluded.body,
			updated_at=excluded.updated_at`,
		doc.ID, doc.Collection, doc.Kind, doc.Ref, string(tags), string(doc.Body),
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("upsert document: %w", err)
	}
	return doc.ID, nil
}

// Get retrieves a document by collection and ID.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, collection, kind, ref, tags, body, created_at, updated_at
		FROM documents WHERE collection = ? AND id = ?`, collection, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
	}
	return doc, err
}

// Query returns documents matching the filter, newest first. The tag filter
// runs in Go over the decoded tag list; the indexed columns narrow the scan.
func (s *DocumentStore) Query(ctx context.Context, collection string, f store.Filter) ([]*store.Document, error) {
	query := `SELECT id, collection, kind, ref, tags, body, created_at, updated_at
		FROM documents WHERE collection = ?`
	args := []any{collection}
	if f.Kind != "" {
		query += " AND kind = ?"
		args = append(args, f.Kind)
	}
	if f.Ref != "" {
		query += " AND ref = ?"
		args = append(args, f.Ref)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []*store.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		if f.Tag != "" && !slices.Contains(doc.Tags, f.Tag) {
			continue
		}
		docs = append(docs, doc)
		if f.Limit > 0 && len(docs) >= f.Limit {
			break
		}
	}
	return docs, rows.Err()
}

// Delete removes a document.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?", collection, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
	}
	return nil
}

// Ping verifies connectivity.
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *DocumentStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*store.Document, error) {
	var doc store.Document
	var tags, body string
	if err := row.Scan(&doc.ID, &doc.Collection, &doc.Kind, &doc.Ref,
		&tags, &body, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &doc.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	doc.Body = json.RawMessage(body)
	return &doc, nil
}
