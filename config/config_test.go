package config

import (
	"testing"

	"github.com/spf13/viper"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func TestDecodeDefaults(t *testing.T) {
	cfg, err := decode(newTestViper())
	if err != nil {
		t.Fatalf("decode defaults: %v", err)
	}
	if cfg.MaxParticipants != 20 {
		t.Fatalf("expected ceiling 20, got %d", cfg.MaxParticipants)
	}
	if cfg.HistoryWindow != 8 {
		t.Fatalf("expected history window 8, got %d", cfg.HistoryWindow)
	}
	if cfg.SessionTTL.Minutes() != 30 {
		t.Fatalf("expected 30m session ttl, got %s", cfg.SessionTTL)
	}
}

func TestDecodeRejectsUnknownBackend(t *testing.T) {
	v := newTestViper()
	v.Set("STORAGE_BACKEND", "sqlite")
	if _, err := decode(v); err == nil {
		t.Fatal("expected validation error for unknown storage backend")
	}
}

func TestDecodeJWTModeNeedsSecret(t *testing.T) {
	v := newTestViper()
	v.Set("AUTH_MODE", "jwt")
	if _, err := decode(v); err == nil {
		t.Fatal("expected validation error without JWT_SECRET")
	}

	v.Set("JWT_SECRET", "s3cret")
	if _, err := decode(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeFirestoreNeedsProject(t *testing.T) {
	v := newTestViper()
	v.Set("STORAGE_BACKEND", "firestore")
	if _, err := decode(v); err == nil {
		t.Fatal("expected validation error without FIREBASE_PROJECT_ID")
	}
}
