package utils

import (
	"context"
	"testing"
	"time"
)

func TestJWTTokenVerifier(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateToken([]byte(secret), "user-1", "Ana", "ana@example.com", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	id, err := NewJWTTokenVerifier(secret).Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.UserID != "user-1" || id.DisplayName != "Ana" || id.Email != "ana@example.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}

	if _, err := NewJWTTokenVerifier("other").Verify(context.Background(), token); err == nil {
		t.Fatal("expected signature failure")
	}
}

func TestJWTTokenVerifierRejectsExpired(t *testing.T) {
	token, err := GenerateToken([]byte("s"), "user-1", "", "", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewJWTTokenVerifier("s").Verify(context.Background(), token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
