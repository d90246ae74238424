package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/internal/analytics/types"
	"github.com/menna-app/menna-backend/pkg/enums"
	"github.com/menna-app/menna-backend/pkg/logger"
)

const defaultPublishTimeout = 5 * time.Second

// Tracker emits analytics events. Emission is best-effort: a failed publish
// must never fail the calling use case.
type Tracker interface {
	Track(ctx context.Context, event enums.AnalyticsEventType, payload map[string]any)
}

type publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	return p.Publisher.Publish(ctx, msg)
}

// PubSubTracker publishes analytics envelopes to the configured topic.
type PubSubTracker struct {
	pub     publisher
	logg    *logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewTracker builds a tracker that publishes to the given Pub/Sub publisher.
func NewTracker(pub *gcppubsub.Publisher, logg *logger.Logger) (*PubSubTracker, error) {
	if pub == nil {
		return nil, errors.New("publisher is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return newTrackerWithPublisher(gcpPublisher{Publisher: pub}, logg), nil
}

func newTrackerWithPublisher(pub publisher, logg *logger.Logger) *PubSubTracker {
	return &PubSubTracker{
		pub:     pub,
		logg:    logg,
		timeout: defaultPublishTimeout,
	}
}

// Track marshals and publishes the event, logging and dropping any failure.
func (t *PubSubTracker) Track(ctx context.Context, event enums.AnalyticsEventType, payload map[string]any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		t.warn(ctx, event, "marshal analytics payload failed", err)
		return
	}

	envelope := types.Envelope{
		EventID:    uuid.NewString(),
		EventType:  event,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		t.warn(ctx, event, "marshal analytics envelope failed", err)
		return
	}

	result := t.pub.Publish(ctx, &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event_id":   envelope.EventID,
			"event_type": string(event),
		},
	})

	// Confirmation happens off the request path; the publish outcome only
	// matters for logging.
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		waitCtx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		if _, err := result.Get(waitCtx); err != nil {
			t.warn(waitCtx, event, "analytics publish failed", err)
		}
	}()
}

// Wait blocks until all in-flight publish confirmations settle. Used at shutdown.
func (t *PubSubTracker) Wait() {
	t.wg.Wait()
}

func (t *PubSubTracker) warn(ctx context.Context, event enums.AnalyticsEventType, msg string, err error) {
	if t.logg == nil {
		return
	}
	logCtx := t.logg.WithFields(ctx, map[string]any{
		"event_type": string(event),
		"error":      err.Error(),
	})
	t.logg.Warn(logCtx, msg)
}

// NopTracker discards every event. Used when analytics is not configured.
type NopTracker struct{}

// Track implements Tracker.
func (NopTracker) Track(context.Context, enums.AnalyticsEventType, map[string]any) {}
