package idempotency

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeStore struct {
	data map[string]string
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	return f.data[key], nil
}

func (f *fakeStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, exists := f.data[key]; exists {
		return false, nil
	}
	f.data[key] = fmt.Sprint(value)
	return true, nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return "menna:idempotency:" + scope + ":" + id
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func TestCheckAndMarkProcessed(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{data: map[string]string{}}
	manager, err := NewManager(store, time.Hour)
	if err != nil {
		t.Fatalf("building manager: %v", err)
	}

	eventID := uuid.New()

	already, err := manager.CheckAndMarkProcessed(ctx, "analytics", eventID)
	if err != nil {
		t.Fatalf("first check failed: %v", err)
	}
	if already {
		t.Fatalf("first event should not be marked processed")
	}

	already, err = manager.CheckAndMarkProcessed(ctx, "analytics", eventID)
	if err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if !already {
		t.Fatalf("replay should be reported as processed")
	}

	if err := manager.Delete(ctx, "analytics", eventID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	already, err = manager.CheckAndMarkProcessed(ctx, "analytics", eventID)
	if err != nil {
		t.Fatalf("check after delete failed: %v", err)
	}
	if already {
		t.Fatalf("deleted marker should allow reprocessing")
	}
}

func TestProcessedKeyValidation(t *testing.T) {
	store := &fakeStore{data: map[string]string{}}
	manager, err := NewManager(store, time.Hour)
	if err != nil {
		t.Fatalf("building manager: %v", err)
	}

	if _, err := manager.CheckAndMarkProcessed(context.Background(), "", uuid.New()); err == nil {
		t.Fatalf("expected error for empty consumer")
	}
	if _, err := manager.CheckAndMarkProcessed(context.Background(), "analytics", uuid.Nil); err == nil {
		t.Fatalf("expected error for nil event id")
	}
}
