package repository

import (
	"context"
	"errors"

	"trailmate/models"
)

var (
	// ErrNotFound is returned when a document lookup matches nothing.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyBooked is returned when a non-cancelled booking exists for the user and activity.
	ErrAlreadyBooked = errors.New("activity already booked by user")
	// ErrCapacityReached is returned when the activity has no seats left at commit time.
	ErrCapacityReached = errors.New("activity capacity reached")
	// ErrUnavailable is returned when the activity is inactive or expired at commit time.
	ErrUnavailable = errors.New("activity is not available for booking")
)

// LocationRepository reads activity locations.
type LocationRepository interface {
	ListActive(ctx context.Context) ([]models.Location, error)
}

// ActivityRepository reads activities.
type ActivityRepository interface {
	// ListAvailable returns activities with isActive true and isExpired false.
	ListAvailable(ctx context.Context) ([]models.Activity, error)
	GetByID(ctx context.Context, id string) (*models.Activity, error)
}

// BookingRepository reads and commits bookings.
type BookingRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// FindActive returns the non-cancelled booking for the pair, or nil when none exists.
	FindActive(ctx context.Context, userID, activityID string) (*models.Booking, error)
	CountConfirmed(ctx context.Context, activityID string) (int, error)
	// Commit stores a confirmed booking and increments the activity participant
	// counter, both conditionally: it fails with ErrAlreadyBooked when an active
	// booking exists for the pair, with ErrCapacityReached when the counter is
	// already at ceiling, with ErrUnavailable when the activity is inactive or
	// expired and with ErrNotFound when it does not exist. On success it returns
	// the new participant count.
	Commit(ctx context.Context, booking *models.Booking, ceiling int) (int, error)
}

// ProfileRepository reads user profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, userID string) (*models.UserProfile, error)
	// UpdateCredential stores the sealed credential, creating the profile when missing.
	UpdateCredential(ctx context.Context, userID, sealed string) error
}

// Store bundles the repositories a backend provides.
type Store struct {
	Locations  LocationRepository
	Activities ActivityRepository
	Bookings   BookingRepository
	Profiles   ProfileRepository
	Ping       func(ctx context.Context) error
	Close      func(ctx context.Context) error
}
