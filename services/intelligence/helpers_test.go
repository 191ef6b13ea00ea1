package ai

import (
	"context"
	"strings"
	"sync"
	"testing"

	memoryRepo "trailmate/database/repository/memory"
	"trailmate/models"

	"go.uber.org/zap"
)

// scriptedGenerator returns replies in order and records every prompt it saw.
type scriptedGenerator struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	prompts []string
	creds   []string
	block   chan struct{}
}

func (g *scriptedGenerator) Generate(ctx context.Context, credential, prompt string) (string, error) {
	if g.block != nil {
		select {
		case <-g.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	i := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	g.creds = append(g.creds, credential)
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.replies) {
		return g.replies[i], nil
	}
	return "ok", nil
}

func (g *scriptedGenerator) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

func hikingActivity(id string, participants int) models.Activity {
	return models.Activity{
		ID:                  id,
		Title:               "Hiking Trip",
		Difficulty:          "moderate",
		StartDate:           "2030-05-01",
		StartTime:           "09:00",
		EstimatedCost:       25,
		EstimatedDuration:   180,
		CurrentParticipants: participants,
		LocationIDs:         []string{"loc1"},
		IsActive:            true,
	}
}

// fixture seeds a memory store and loads a snapshot for user u1.
type fixture struct {
	store *memoryRepo.Store
	snap  *Snapshot
}

func newFixture(t *testing.T, activities ...models.Activity) *fixture {
	t.Helper()
	store := memoryRepo.NewStore()
	store.PutLocation(models.Location{ID: "loc1", Name: "Ngong Hills", Address: "Ngong Road", IsActive: true})
	store.PutProfile(models.UserProfile{ID: "u1", DisplayName: "Wanjiku", Location: "Nairobi"})
	for _, a := range activities {
		store.PutActivity(a)
	}

	loader := &SnapshotLoader{Store: store.Repositories(), Logger: zap.NewNop()}
	snap, err := loader.Load(context.Background(), models.Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	snap.credential = "test-key"
	return &fixture{store: store, snap: snap}
}

func (f *fixture) executor(capacity int) *BookingExecutor {
	return &BookingExecutor{
		Bookings: f.store.Repositories().Bookings,
		Capacity: capacity,
		Logger:   zap.NewNop(),
	}
}

func msg(author models.MessageAuthor, text string) models.ConversationMessage {
	return models.ConversationMessage{ID: text, Author: author, Text: text}
}

func containsLine(prompt, line string) bool {
	for _, l := range strings.Split(prompt, "\n") {
		if l == line {
			return true
		}
	}
	return false
}
