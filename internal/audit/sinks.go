package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/posthog/posthog-go"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// LogSink writes every event as a structured log line.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink that logs to logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Write(ctx context.Context, event domain.AuditEvent) error {
	s.logger.LogAttrs(ctx, slog.LevelInfo, "audit",
		slog.String("action", string(event.Action)),
		slog.String("entity_type", string(event.EntityType)),
		slog.String("entity_id", event.EntityID),
		slog.String("user_id", event.ActingUser.UserID),
		slog.String("role", string(event.ActingUser.Role)),
		slog.Time("timestamp", event.Timestamp),
		slog.String("before", marshalOrNull(event.OldValue)),
		slog.String("after", marshalOrNull(event.NewValue)),
	)
	return nil
}

// posthogEnqueuer is the part of posthog.Client the sink needs.
type posthogEnqueuer interface {
	Enqueue(posthog.Message) error
	Close() error
}

// PosthogSink forwards events to PostHog as captures keyed by the acting user.
type PosthogSink struct {
	client posthogEnqueuer
}

// NewPosthogSink creates a PostHog client. An empty apiKey returns (nil, nil)
// so callers can skip the sink.
func NewPosthogSink(apiKey, endpoint string) (*PosthogSink, error) {
	if apiKey == "" {
		return nil, nil
	}
	cfg := posthog.Config{}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	client, err := posthog.NewWithConfig(apiKey, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create posthog client: %w", err)
	}
	return &PosthogSink{client: client}, nil
}

func (s *PosthogSink) Name() string { return "posthog" }

func (s *PosthogSink) Write(_ context.Context, event domain.AuditEvent) error {
	props := posthog.NewProperties().
		Set("entity_type", string(event.EntityType)).
		Set("entity_id", event.EntityID).
		Set("role", string(event.ActingUser.Role)).
		Set("before", marshalOrNull(event.OldValue)).
		Set("after", marshalOrNull(event.NewValue))

	return s.client.Enqueue(posthog.Capture{
		DistinctId: event.ActingUser.UserID,
		Event:      EventName(event),
		Timestamp:  event.Timestamp,
		Properties: props,
	})
}

// Close flushes pending captures.
func (s *PosthogSink) Close() error {
	return s.client.Close()
}

// EventName is the analytics event name, e.g. "transaction_delete".
func EventName(event domain.AuditEvent) string {
	return string(event.EntityType) + "_" + string(event.Action)
}

// marshalOrNull renders v as JSON, "null" when absent or unencodable.
func marshalOrNull(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
