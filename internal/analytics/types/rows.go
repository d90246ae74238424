package types

import (
	"fmt"
	"time"

	cbigquery "cloud.google.com/go/bigquery"
)

// EventRow mirrors the events BigQuery schema. The id columns are strings so
// the warehouse keeps accepting rows when a payload omits one of them.
type EventRow struct {
	EventID    string             `bigquery:"event_id"`
	Event      string             `bigquery:"event"`
	Timestamp  time.Time          `bigquery:"timestamp"`
	UserID     string             `bigquery:"user_id"`
	ProviderID string             `bigquery:"provider_id"`
	City       string             `bigquery:"city"`
	Category   string             `bigquery:"category"`
	Metadata   cbigquery.NullJSON `bigquery:"metadata"`
}

// RowFromEnvelope flattens the envelope's well-known payload keys into
// warehouse columns and keeps the full payload as metadata.
func RowFromEnvelope(envelope Envelope) (EventRow, error) {
	payload, err := envelope.PayloadMap()
	if err != nil {
		return EventRow{}, fmt.Errorf("decode payload: %w", err)
	}

	metadata := cbigquery.NullJSON{}
	if len(payload) > 0 {
		metadata = cbigquery.NullJSON{JSONVal: string(envelope.Payload), Valid: true}
	}

	return EventRow{
		EventID:    envelope.EventID,
		Event:      string(envelope.EventType),
		Timestamp:  envelope.OccurredAt,
		UserID:     stringField(payload, "user_id"),
		ProviderID: stringField(payload, "provider_id"),
		City:       stringField(payload, "city_id"),
		Category:   stringField(payload, "category_id"),
		Metadata:   metadata,
	}, nil
}

func stringField(payload map[string]any, key string) string {
	value, ok := payload[key]
	if !ok || value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
