package ai

import (
	"context"
	"errors"
	"testing"

	memoryRepo "trailmate/database/repository/memory"
	"trailmate/models"
	"trailmate/utils"

	"go.uber.org/zap"
)

type stubPlaces map[float64]string

func (p stubPlaces) Describe(_ context.Context, lat, _ float64) (string, error) {
	if d, ok := p[lat]; ok {
		return d, nil
	}
	return "", errors.New("lookup failed")
}

func TestLoadEnrichesLocations(t *testing.T) {
	store := memoryRepo.NewStore()
	store.PutLocation(models.Location{ID: "a", Address: "Road A", Coordinates: models.GeoPoint{Latitude: 1, Longitude: 36}, IsActive: true})
	store.PutLocation(models.Location{ID: "b", Address: "Road B", Coordinates: models.GeoPoint{Latitude: 2, Longitude: 36}, IsActive: true})
	store.PutLocation(models.Location{ID: "c", Address: "Road C", IsActive: true})
	store.PutLocation(models.Location{ID: "d", Address: "Road D", IsActive: false})

	loader := &SnapshotLoader{
		Store:  store.Repositories(),
		Places: stubPlaces{1: "Karen, Nairobi, Kenya"},
		Logger: zap.NewNop(),
	}
	snap, err := loader.Load(context.Background(), models.Identity{UserID: "u1", DisplayName: "Guest"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := map[string]string{"a": "Karen, Nairobi, Kenya", "b": "Road B", "c": "Road C"}
	if len(snap.Locations) != len(want) {
		t.Fatalf("expected %d active locations, got %d", len(want), len(snap.Locations))
	}
	for _, l := range snap.Locations {
		if l.PlaceDescription != want[l.ID] {
			t.Errorf("location %s: got %q, want %q", l.ID, l.PlaceDescription, want[l.ID])
		}
	}
	if snap.Profile.DisplayName != "Guest" {
		t.Errorf("missing profile should fall back to identity, got %q", snap.Profile.DisplayName)
	}
}

func TestLoadOpensCredential(t *testing.T) {
	const secret = "0123456789abcdef0123456789abcdef"
	sealed, err := utils.SealCredential(secret, "user-key")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	store := memoryRepo.NewStore()
	store.PutProfile(models.UserProfile{ID: "u1", APICredential: sealed})

	loader := &SnapshotLoader{Store: store.Repositories(), CredentialSecret: secret, Logger: zap.NewNop()}
	snap, err := loader.Load(context.Background(), models.Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Credential() != "user-key" {
		t.Errorf("got credential %q", snap.Credential())
	}
	if snap.Profile.APICredential != "" {
		t.Error("sealed credential must not stay on the profile")
	}
}

func TestLoadFailsOnStoreError(t *testing.T) {
	store := memoryRepo.NewStore()
	store.Err = errors.New("unreachable")

	loader := &SnapshotLoader{Store: store.Repositories(), Logger: zap.NewNop()}
	if _, err := loader.Load(context.Background(), models.Identity{UserID: "u1"}); err == nil {
		t.Fatal("expected an error")
	}
}
