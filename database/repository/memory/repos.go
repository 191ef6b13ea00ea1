package memoryRepo

import (
	"context"
	"sort"
	"time"

	"trailmate/database/repository"
	"trailmate/models"
)

type LocationRepo Store

func (r *LocationRepo) ListActive(_ context.Context) ([]models.Location, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Location
	for _, l := range s.locations {
		if l.IsActive {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type ActivityRepo Store

func (r *ActivityRepo) ListAvailable(_ context.Context) ([]models.Activity, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Activity
	for _, a := range s.activities {
		if a.Available() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ActivityRepo) GetByID(_ context.Context, id string) (*models.Activity, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	a, ok := s.activities[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

type BookingRepo Store

func (r *BookingRepo) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepo) FindActive(_ context.Context, userID, activityID string) (*models.Booking, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if b, ok := s.findActiveLocked(userID, activityID); ok {
		return &b, nil
	}
	return nil, nil
}

func (r *BookingRepo) CountConfirmed(_ context.Context, activityID string) (int, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return 0, s.Err
	}
	n := 0
	for _, b := range s.bookings {
		if b.ActivityID == activityID && b.Status == models.BookingConfirmed {
			n++
		}
	}
	return n, nil
}

func (r *BookingRepo) Commit(_ context.Context, b *models.Booking, ceiling int) (int, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commits++
	if s.Err != nil {
		return 0, s.Err
	}
	if _, ok := s.findActiveLocked(b.UserID, b.ActivityID); ok {
		return 0, repository.ErrAlreadyBooked
	}
	act, ok := s.activities[b.ActivityID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	if !act.Available() {
		return 0, repository.ErrUnavailable
	}
	if act.CurrentParticipants >= ceiling {
		return 0, repository.ErrCapacityReached
	}
	act.CurrentParticipants++
	s.activities[act.ID] = act
	s.bookings[b.ID] = *b
	s.inserts++
	return act.CurrentParticipants, nil
}

func (s *Store) findActiveLocked(userID, activityID string) (models.Booking, bool) {
	for _, b := range s.bookings {
		if b.UserID == userID && b.ActivityID == activityID && b.Active() {
			return b, true
		}
	}
	return models.Booking{}, false
}

type ProfileRepo Store

func (r *ProfileRepo) GetByID(_ context.Context, userID string) (*models.UserProfile, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *ProfileRepo) UpdateCredential(_ context.Context, userID, sealed string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	p, ok := s.profiles[userID]
	if !ok {
		p = models.UserProfile{ID: userID, CreatedAt: time.Now()}
	}
	p.APICredential = sealed
	p.UpdatedAt = time.Now()
	s.profiles[userID] = p
	return nil
}
