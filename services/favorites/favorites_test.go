package favorites

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"trailmate/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// unreachable points at a port nothing listens on.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestGetDegradesToEmptyWhenStoreUnavailable(t *testing.T) {
	svc := NewService(unreachable(), zap.NewNop())

	fav, err := svc.Get(context.Background(), "u1", models.FavoriteLocations)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fav.Items == nil || len(fav.Items) != 0 {
		t.Fatalf("expected empty list, got %v", fav.Items)
	}
}

func TestSetSwallowsStoreFailure(t *testing.T) {
	svc := NewService(unreachable(), zap.NewNop())

	items := []json.RawMessage{json.RawMessage(`{"id":"loc1"}`)}
	if err := svc.Set(context.Background(), "u1", models.FavoriteActivities, items); err != nil {
		t.Fatalf("expected write failure to be swallowed, got %v", err)
	}
}

func TestUnknownCategory(t *testing.T) {
	svc := NewService(unreachable(), zap.NewNop())
	if _, err := svc.Get(context.Background(), "u1", "photos"); err != ErrUnknownCategory {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if err := svc.Set(context.Background(), "u1", "photos", nil); err != ErrUnknownCategory {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}
