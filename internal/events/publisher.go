package events

import (
	"context"
	"log/slog"
)

// Publisher delivers contribution events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event *ContributionEvent) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(ctx context.Context, event *ContributionEvent) error {
	slog.DebugContext(ctx, "Event publishing disabled, dropping event",
		"event_type", string(event.Type),
		"contribution_id", event.ContributionID)
	return nil
}

// Close implements Publisher.
func (NoopPublisher) Close() error { return nil }
