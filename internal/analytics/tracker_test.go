package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	gcppubsub "cloud.google.com/go/pubsub/v2"

	"github.com/menna-app/menna-backend/internal/analytics/types"
	"github.com/menna-app/menna-backend/pkg/enums"
	"github.com/menna-app/menna-backend/pkg/logger"
)

type fakeResult struct {
	err error
}

func (f fakeResult) Get(context.Context) (string, error) {
	return "msg-1", f.err
}

type fakePublisher struct {
	messages []*gcppubsub.Message
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	f.messages = append(f.messages, msg)
	return fakeResult{err: f.err}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestTrackPublishesEnvelope(t *testing.T) {
	pub := &fakePublisher{}
	tracker := newTrackerWithPublisher(pub, testLogger())

	tracker.Track(context.Background(), enums.AnalyticsEventLeadDelivered, map[string]any{
		"lead_id":     "lead-1",
		"provider_id": "prov-1",
	})
	tracker.Wait()

	if len(pub.messages) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(pub.messages))
	}
	msg := pub.messages[0]
	if msg.Attributes["event_type"] != "lead_delivered" {
		t.Fatalf("unexpected event_type attribute %q", msg.Attributes["event_type"])
	}
	if msg.Attributes["event_id"] == "" {
		t.Fatalf("expected event_id attribute")
	}

	var envelope types.Envelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.EventType != enums.AnalyticsEventLeadDelivered {
		t.Fatalf("unexpected envelope event type %s", envelope.EventType)
	}
	payload, err := envelope.PayloadMap()
	if err != nil {
		t.Fatalf("payload map: %v", err)
	}
	if payload["provider_id"] != "prov-1" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if envelope.OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be set")
	}
}

func TestTrackSwallowsPublishErrors(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	tracker := newTrackerWithPublisher(pub, testLogger())

	// Must not panic or propagate the failure.
	tracker.Track(context.Background(), enums.AnalyticsEventReviewCreated, map[string]any{"rating": 5})
	tracker.Wait()

	if len(pub.messages) != 1 {
		t.Fatalf("expected publish attempt, got %d", len(pub.messages))
	}
}
