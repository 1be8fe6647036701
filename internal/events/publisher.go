package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Publisher publishes content lifecycle events. A nil-connection Publisher
// is disabled: every publish is a silent no-op, so callers do not branch on
// whether a broker was configured.
type Publisher struct {
	conn *Connection
}

// NewPublisher creates a new event publisher.
func NewPublisher(conn *Connection) *Publisher {
	return &Publisher{conn: conn}
}

// Enabled reports whether a broker connection is configured.
func (p *Publisher) Enabled() bool {
	return p != nil && p.conn != nil
}

// PublishAccepted publishes an accepted-content event.
func (p *Publisher) PublishAccepted(ctx context.Context, ev *ContentAccepted) error {
	if !p.Enabled() {
		return nil
	}
	if ev.BatchID == uuid.Nil {
		ev.BatchID = uuid.New()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	if err := p.conn.PublishJSON(ctx, AcceptedQueueName, ev); err != nil {
		return fmt.Errorf("failed to publish accepted event: %w", err)
	}

	slog.Info("published accepted event",
		"batch_id", ev.BatchID,
		"collection", ev.Collection,
		"kind", ev.Kind,
		"accepted", ev.AcceptedCount,
		"requested", ev.RequestedCount,
	)

	return nil
}

// PublishRejected publishes a rejected-content event.
func (p *Publisher) PublishRejected(ctx context.Context, ev *ContentRejected) error {
	if !p.Enabled() {
		return nil
	}
	if ev.BatchID == uuid.Nil {
		ev.BatchID = uuid.New()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	if err := p.conn.PublishJSON(ctx, RejectedQueueName, ev); err != nil {
		return fmt.Errorf("failed to publish rejected event: %w", err)
	}

	slog.Info("published rejected event",
		"batch_id", ev.BatchID,
		"kind", ev.Kind,
		"reason", ev.Reason,
	)

	return nil
}
