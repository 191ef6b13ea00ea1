package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trailmate/database/repository"
	"trailmate/models"
	"trailmate/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the read-only view of the domain taken when a session starts.
// Only the booking executor mutates it, and only after a successful commit.
type Snapshot struct {
	Locations  []models.Location
	Activities []models.Activity
	Bookings   []models.Booking
	Profile    models.UserProfile
	LoadedAt   time.Time

	credential string
}

// Activity returns the snapshot's copy of the activity with the given id.
func (s *Snapshot) Activity(id string) (*models.Activity, bool) {
	for i := range s.Activities {
		if s.Activities[i].ID == id {
			return &s.Activities[i], true
		}
	}
	return nil, false
}

// Credential is the opened generation API key, empty when the user has none.
func (s *Snapshot) Credential() string {
	return s.credential
}

func (s *Snapshot) recordBooking(b models.Booking, participants int) {
	s.Bookings = append(s.Bookings, b)
	if a, ok := s.Activity(b.ActivityID); ok {
		a.CurrentParticipants = participants
	}
}

// SnapshotLoader reads everything a session needs in one pass.
type SnapshotLoader struct {
	Store            repository.Store
	Places           PlaceDescriber
	CredentialSecret string
	Logger           *zap.Logger

	// EnrichConcurrency bounds parallel reverse-geocode calls.
	EnrichConcurrency int
}

// Load reads locations, activities, the user's bookings and profile
// concurrently, then enriches locations with place descriptions.
func (l *SnapshotLoader) Load(ctx context.Context, id models.Identity) (*Snapshot, error) {
	snap := &Snapshot{LoadedAt: time.Now()}
	var profile *models.UserProfile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		locs, err := l.Store.Locations.ListActive(gctx)
		if err != nil {
			return fmt.Errorf("load locations: %w", err)
		}
		snap.Locations = locs
		return nil
	})
	g.Go(func() error {
		acts, err := l.Store.Activities.ListAvailable(gctx)
		if err != nil {
			return fmt.Errorf("load activities: %w", err)
		}
		snap.Activities = acts
		return nil
	})
	g.Go(func() error {
		bookings, err := l.Store.Bookings.ListByUser(gctx, id.UserID)
		if err != nil {
			return fmt.Errorf("load bookings: %w", err)
		}
		snap.Bookings = bookings
		return nil
	})
	g.Go(func() error {
		p, err := l.Store.Profiles.GetByID(gctx, id.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		profile = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if profile != nil {
		snap.Profile = *profile
	}
	snap.Profile.ID = id.UserID
	if snap.Profile.DisplayName == "" {
		snap.Profile.DisplayName = id.DisplayName
	}
	if snap.Profile.Email == "" {
		snap.Profile.Email = id.Email
	}
	if sealed := snap.Profile.APICredential; sealed != "" {
		cred, err := utils.OpenCredential(l.CredentialSecret, sealed)
		if err != nil {
			l.Logger.Warn("stored credential could not be opened", zap.String("userID", id.UserID), zap.Error(err))
		} else {
			snap.credential = cred
		}
		snap.Profile.APICredential = ""
	}

	l.enrich(ctx, snap.Locations)
	return snap, nil
}

// enrich fills PlaceDescription for every location. A failed lookup falls
// back to the stored address and never fails the load.
func (l *SnapshotLoader) enrich(ctx context.Context, locs []models.Location) {
	limit := l.EnrichConcurrency
	if limit <= 0 {
		limit = 4
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i := range locs {
		loc := &locs[i]
		if l.Places == nil || !loc.HasCoordinates() {
			loc.PlaceDescription = loc.Address
			continue
		}
		g.Go(func() error {
			desc, err := l.Places.Describe(ctx, loc.Coordinates.Latitude, loc.Coordinates.Longitude)
			if err != nil || desc == "" {
				l.Logger.Debug("place enrichment fell back to address", zap.String("locationID", loc.ID), zap.Error(err))
				loc.PlaceDescription = loc.Address
				return nil
			}
			loc.PlaceDescription = desc
			return nil
		})
	}
	_ = g.Wait()
}
