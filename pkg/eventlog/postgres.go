package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PostgresLog persists domain events in a single append-only table with JSONB
// payloads. It serves the same Log contract as MemoryLog so the engine never
// notices which one it talks to.
type PostgresLog struct {
	db     *sql.DB
	tracer trace.Tracer
}

func NewPostgresLog(db *sql.DB) *PostgresLog {
	return &PostgresLog{
		db:     db,
		tracer: otel.Tracer("inventorymanagements/eventlog"),
	}
}

// EnsureSchema creates the events table when it does not exist yet.
func (l *PostgresLog) EnsureSchema(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS domain_events (
			id BIGSERIAL PRIMARY KEY,
			event_type TEXT NOT NULL,
			event_data JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS domain_events_order_idx ON domain_events ((event_data->>'order_id'));
		CREATE INDEX IF NOT EXISTS domain_events_sku_idx ON domain_events ((event_data->>'sku_id'));
	`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (l *PostgresLog) Append(ctx context.Context, event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event must not be nil")
	}

	ctx, span := l.tracer.Start(ctx, "eventlog.append",
		trace.WithAttributes(
			attribute.String("event.kind", string(event.Kind())),
			attribute.String("event.order_id", eventOrderID(event)),
		),
	)
	defer span.End()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT INTO domain_events (event_type, event_data, created_at)
		VALUES ($1, $2, $3)
	`, string(event.Kind()), payload, event.OccurredAt())
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	span.SetAttributes(attribute.Bool("append.success", true))
	return nil
}

func (l *PostgresLog) All(ctx context.Context) ([]DomainEvent, error) {
	ctx, span := l.tracer.Start(ctx, "eventlog.all")
	defer span.End()

	return l.query(ctx, span, `
		SELECT event_type, event_data, created_at
		FROM domain_events
		ORDER BY id ASC
	`)
}

func (l *PostgresLog) ByOrder(ctx context.Context, orderID string) ([]DomainEvent, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order id must not be empty")
	}

	ctx, span := l.tracer.Start(ctx, "eventlog.by_order",
		trace.WithAttributes(attribute.String("order.id", orderID)),
	)
	defer span.End()

	return l.query(ctx, span, `
		SELECT event_type, event_data, created_at
		FROM domain_events
		WHERE event_data->>'order_id' = $1
		ORDER BY id ASC
	`, orderID)
}

func (l *PostgresLog) BySku(ctx context.Context, skuID string) ([]DomainEvent, error) {
	if skuID == "" {
		return nil, fmt.Errorf("sku id must not be empty")
	}

	ctx, span := l.tracer.Start(ctx, "eventlog.by_sku",
		trace.WithAttributes(attribute.String("sku.id", skuID)),
	)
	defer span.End()

	return l.query(ctx, span, `
		SELECT event_type, event_data, created_at
		FROM domain_events
		WHERE event_type = $1 AND event_data->>'sku_id' = $2
		ORDER BY id ASC
	`, string(KindAllocation), skuID)
}

func (l *PostgresLog) query(ctx context.Context, span trace.Span, query string, args ...any) ([]DomainEvent, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []DomainEvent
	for rows.Next() {
		var (
			kind      string
			payload   []byte
			createdAt time.Time
		)
		if err := rows.Scan(&kind, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		event, err := decodeEvent(Kind(kind), payload)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	span.SetAttributes(attribute.Int("events.loaded", len(events)))
	return events, nil
}

func decodeEvent(kind Kind, payload []byte) (DomainEvent, error) {
	switch kind {
	case KindAllocation:
		var e SkuQuantityAllocated
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode allocation event: %w", err)
		}
		return e, nil
	case KindDeallocation:
		var e SkuQuantityDeallocated
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode deallocation event: %w", err)
		}
		return e, nil
	case KindOrderCancelled:
		var e OrderCancelled
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("decode order-cancelled event: %w", err)
		}
		return e, nil
	}
	return nil, fmt.Errorf("unknown event kind %q", kind)
}
