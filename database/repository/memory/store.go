package memoryRepo

import (
	"context"
	"sync"

	"trailmate/database/repository"
	"trailmate/models"
)

// Store is an in-process backend used for local runs and tests. All
// repositories share one lock so a commit sees activities and bookings atomically.
type Store struct {
	mu         sync.RWMutex
	locations  map[string]models.Location
	activities map[string]models.Activity
	bookings   map[string]models.Booking
	profiles   map[string]models.UserProfile

	commits int
	inserts int

	// Err, when set, is returned by every read and write.
	Err error
}

func NewStore() *Store {
	return &Store{
		locations:  make(map[string]models.Location),
		activities: make(map[string]models.Activity),
		bookings:   make(map[string]models.Booking),
		profiles:   make(map[string]models.UserProfile),
	}
}

// Repositories exposes s through the repository interfaces.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Locations:  (*LocationRepo)(s),
		Activities: (*ActivityRepo)(s),
		Bookings:   (*BookingRepo)(s),
		Profiles:   (*ProfileRepo)(s),
		Ping:       func(context.Context) error { return nil },
		Close:      func(context.Context) error { return nil },
	}
}

func (s *Store) PutLocation(l models.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[l.ID] = l
}

func (s *Store) PutActivity(a models.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities[a.ID] = a
}

func (s *Store) PutBooking(b models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
}

func (s *Store) PutProfile(p models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
}

// Activity returns the stored copy of an activity.
func (s *Store) Activity(id string) (models.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[id]
	return a, ok
}

// Commits is the number of Commit calls made so far.
func (s *Store) Commits() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commits
}

// Inserts is the number of bookings written by Commit.
func (s *Store) Inserts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inserts
}
