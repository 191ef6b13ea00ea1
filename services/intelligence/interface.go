package ai

import (
	"context"
	"errors"

	"trailmate/models"
)

var (
	// ErrMissingCredential means no generation API key is available for the user.
	ErrMissingCredential = errors.New("no generation credential configured")
	// ErrSessionBusy is returned when a turn is already in flight for the session.
	ErrSessionBusy = errors.New("a message is already being processed for this session")
	// ErrSessionNotFound is returned for unknown, expired or foreign session ids.
	ErrSessionNotFound = errors.New("conversation session not found")
	// ErrEmptyMessage is returned for blank user input.
	ErrEmptyMessage = errors.New("message text is empty")
)

// Generator produces the raw assistant reply for a prompt using the given credential.
type Generator interface {
	Generate(ctx context.Context, credential, prompt string) (string, error)
}

// TranscriptStore mirrors session transcripts outside the process.
type TranscriptStore interface {
	Open(ctx context.Context, sessionID, userID string) error
	Owner(ctx context.Context, sessionID string) (string, error)
	Append(ctx context.Context, sessionID string, msg models.ConversationMessage) error
	List(ctx context.Context, sessionID string) ([]models.ConversationMessage, error)
	Clear(ctx context.Context, sessionID string) error
}

// BookingNotifier is told about every booking the executor commits.
type BookingNotifier interface {
	BookingConfirmed(ctx context.Context, booking models.Booking, activity models.Activity)
}

// PlaceDescriber turns coordinates into a human-readable place name.
type PlaceDescriber interface {
	Describe(ctx context.Context, lat, lng float64) (string, error)
}
