package writer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/menna-app/menna-backend/internal/analytics/types"
	pkgbigquery "github.com/menna-app/menna-backend/pkg/bigquery"
)

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 250 * time.Millisecond
	defaultMaximumBackoff = 2 * time.Second
)

// RetryPolicy controls how many times BigQuery inserts are retried.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaximumBackoff time.Duration
}

// Config controls the analytics writer behavior.
type Config struct {
	EventsTable string
	RetryPolicy RetryPolicy
}

type tableInserter interface {
	InsertRows(ctx context.Context, table string, rows []any) error
}

// BigQueryWriter inserts analytics event rows into BigQuery with retries.
type BigQueryWriter struct {
	client tableInserter
	table  string
	retry  RetryPolicy
}

// New creates a new BigQueryWriter backed by a shared client.
func New(client *pkgbigquery.Client, cfg Config) (*BigQueryWriter, error) {
	if client == nil {
		return nil, errors.New("bigquery client required")
	}
	return newWithInserter(client, cfg)
}

func newWithInserter(client tableInserter, cfg Config) (*BigQueryWriter, error) {
	table := strings.TrimSpace(cfg.EventsTable)
	if table == "" {
		return nil, errors.New("events table is required")
	}

	retry := cfg.RetryPolicy
	if retry.MaxAttempts <= 0 {
		retry.MaxAttempts = defaultMaxAttempts
	}
	if retry.InitialBackoff <= 0 {
		retry.InitialBackoff = defaultInitialBackoff
	}
	if retry.MaximumBackoff <= 0 {
		retry.MaximumBackoff = defaultMaximumBackoff
	}
	if retry.MaximumBackoff < retry.InitialBackoff {
		retry.MaximumBackoff = retry.InitialBackoff
	}

	return &BigQueryWriter{
		client: client,
		table:  table,
		retry:  retry,
	}, nil
}

// WriteEnvelope flattens the envelope into a warehouse row and inserts it.
func (w *BigQueryWriter) WriteEnvelope(ctx context.Context, envelope types.Envelope) error {
	row, err := types.RowFromEnvelope(envelope)
	if err != nil {
		return fmt.Errorf("build event row: %w", err)
	}
	return w.insertWithRetry(ctx, []any{row})
}

func (w *BigQueryWriter) insertWithRetry(ctx context.Context, rows []any) error {
	backoff := w.retry.InitialBackoff
	var lastErr error

	for attempt := 1; attempt <= w.retry.MaxAttempts; attempt++ {
		lastErr = w.client.InsertRows(ctx, w.table, rows)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) || attempt == w.retry.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > w.retry.MaximumBackoff {
			backoff = w.retry.MaximumBackoff
		}
	}

	return fmt.Errorf("insert analytics rows: %w", lastErr)
}

func isRetryable(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		switch apiErr.Code {
		case http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusTooManyRequests:
			return true
		}
		return false
	}

	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return true
	}
	return false
}
