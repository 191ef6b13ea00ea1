package ai

import (
	"context"
	"testing"
	"time"

	"trailmate/models"

	"github.com/go-redis/redis/v8"
)

func TestNewTranscriptStoreFollowsBackend(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	cases := []struct {
		backend  string
		client   *redis.Client
		inMemory bool
	}{
		{"memory", client, true},
		{"mongo", client, false},
		{"firestore", client, false},
		{"mongo", nil, true},
	}
	for _, tc := range cases {
		store := NewTranscriptStore(tc.backend, tc.client, time.Hour)
		_, isMemory := store.(*MemoryContextStore)
		if isMemory != tc.inMemory {
			t.Errorf("backend %q: expected in-memory=%v, got %T", tc.backend, tc.inMemory, store)
		}
	}
}

func TestMemoryContextStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewTranscriptStore("memory", nil, time.Hour)

	if err := store.Open(ctx, "s1", "u1"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Append(ctx, "s1", models.ConversationMessage{ID: "m1", Text: "hi", Author: models.AuthorUser}); err != nil {
		t.Fatalf("append: %v", err)
	}
	owner, err := store.Owner(ctx, "s1")
	if err != nil || owner != "u1" {
		t.Fatalf("expected owner u1, got %q %v", owner, err)
	}
	msgs, err := store.List(ctx, "s1")
	if err != nil || len(msgs) != 1 || msgs[0].Text != "hi" {
		t.Fatalf("unexpected transcript %+v %v", msgs, err)
	}
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Owner(ctx, "s1"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after clear, got %v", err)
	}
}
