// Package postgres implements the document store on PostgreSQL. Bodies live
// in a JSONB column so ad-hoc SQL over stored content stays possible; the
// filter columns mirror the SQLite schema.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/sqlc-dev/pqtype"

	"github.com/lexforge/lexforge/internal/store"
)

var _ store.DocumentStore = (*DocumentStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT NOT NULL,
	collection TEXT NOT NULL,
	kind       TEXT NOT NULL,
	ref        TEXT NOT NULL DEFAULT '',
	tags       TEXT[] NOT NULL DEFAULT '{}',
	body       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents(collection, kind);
CREATE INDEX IF NOT EXISTS idx_documents_ref ON documents(ref);
CREATE INDEX IF NOT EXISTS idx_documents_tags ON documents USING GIN(tags);
`

// DocumentStore implements document persistence backed by PostgreSQL.
type DocumentStore struct {
	pool *pgxpool.Pool
}

// Open connects to PostgreSQL and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*DocumentStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &DocumentStore{pool: pool}, nil
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

	_, err := s.pool.Exec(ctx, `
		INSERT INTO documents (id, collection, kind, ref, tags, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (collection, id) DO UPDATE SET
			kind=excluded.kind,
			ref=excluded.ref,
			tags=excluded.tags,
			body=excluded.body,
			updated_at=excluded.updated_at`,
		doc.ID, doc.Collection, doc.Kind, doc.Ref, pq.Array(doc.Tags),
		[]byte(doc.Body), doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("upsert document: %w", err)
	}
	return doc.ID, nil
}

// Get retrieves a document by collection and ID.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, collection, kind, ref, tags, body, created_at, updated_at
		FROM documents WHERE collection = $1 AND id = $2`, collection, id)

	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
	}
	return doc, err
}

// Query returns documents matching the filter, newest first. All filters run
// server-side; the tag filter uses array containment over the GIN index.
func (s *DocumentStore) Query(ctx context.Context, collection string, f store.Filter) ([]*store.Document, error) {
	query := `SELECT id, collection, kind, ref, tags, body, created_at, updated_at
		FROM documents WHERE collection = $1`
	args := []any{collection}
	if f.Kind != "" {
		args = append(args, f.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if f.Ref != "" {
		args = append(args, f.Ref)
		query += fmt.Sprintf(" AND ref = $%d", len(args))
	}
	if f.Tag != "" {
		args = append(args, pq.Array([]string{f.Tag}))
		query += fmt.Sprintf(" AND tags @> $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
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
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Delete removes a document.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM documents WHERE collection = $1 AND id = $2", collection, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
	}
	return nil
}

// Ping verifies connectivity.
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *DocumentStore) Close() error {
	s.pool.Close()
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*store.Document, error) {
	var doc store.Document
	var body pqtype.NullRawMessage
	if err := row.Scan(&doc.ID, &doc.Collection, &doc.Kind, &doc.Ref,
		pq.Array(&doc.Tags), &body, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	if body.Valid {
		doc.Body = json.RawMessage(body.RawMessage)
	}
	return &doc, nil
}
