package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trailmate/database/repository"
	"trailmate/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCapacity is the participant ceiling used when an activity sets none.
const DefaultCapacity = 20

type OutcomeKind string

const (
	OutcomeSuccess       OutcomeKind = "success"
	OutcomeAlreadyBooked OutcomeKind = "already_booked"
	OutcomeNotFound      OutcomeKind = "not_found"
	OutcomeUnavailable   OutcomeKind = "unavailable"
	OutcomeFull          OutcomeKind = "full"
	OutcomeFailed        OutcomeKind = "failed"
)

// Outcome is the result of one booking attempt. Every expected case is an
// Outcome; none is reported as an error.
type Outcome struct {
	Kind       OutcomeKind
	ActivityID string
	Message    string
	Booking    *models.Booking
	// Count is the participant position on success and the observed count when full.
	Count int
}

// BookingExecutor validates and commits a booking requested by the model.
type BookingExecutor struct {
	Bookings repository.BookingRepository
	Capacity int
	Notifier BookingNotifier
	Logger   *zap.Logger

	now func() time.Time
}

func (e *BookingExecutor) clock() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now().UTC()
}

func (e *BookingExecutor) capacity() int {
	if e.Capacity > 0 {
		return e.Capacity
	}
	return DefaultCapacity
}

func activityName(a *models.Activity) string {
	if a == nil || a.Title == "" {
		return "this activity"
	}
	return a.Title
}

// Execute runs the duplicate, availability and capacity checks in order and
// commits when all pass.
func (e *BookingExecutor) Execute(ctx context.Context, snap *Snapshot, userID, activityID string) Outcome {
	log := e.Logger.With(zap.String("user_id", userID), zap.String("activity_id", activityID))
	act, known := snap.Activity(activityID)

	if !ValidActivityID(activityID) {
		return e.finish(log, Outcome{
			Kind:       OutcomeNotFound,
			ActivityID: activityID,
			Message:    "Sorry, I couldn't find that activity. Could you tell me which one you'd like to book?",
		})
	}

	existing, err := e.Bookings.FindActive(ctx, userID, activityID)
	if err != nil {
		return e.failed(log, activityID, fmt.Errorf("duplicate check: %w", err))
	}
	if existing != nil {
		return e.finish(log, Outcome{
			Kind:       OutcomeAlreadyBooked,
			ActivityID: activityID,
			Booking:    existing,
			Message:    fmt.Sprintf("You've already booked %s. No need to book it again!", activityName(act)),
		})
	}

	if !known {
		return e.finish(log, Outcome{
			Kind:       OutcomeNotFound,
			ActivityID: activityID,
			Message:    "Sorry, I couldn't find that activity. It may no longer be listed.",
		})
	}
	if !act.Available() {
		return e.finish(log, Outcome{
			Kind:       OutcomeUnavailable,
			ActivityID: activityID,
			Message:    fmt.Sprintf("Sorry, %s is no longer available for booking.", act.Title),
		})
	}

	ceiling := act.Capacity(e.capacity())
	if act.CurrentParticipants >= ceiling {
		return e.full(log, act, act.CurrentParticipants, ceiling)
	}
	confirmed, err := e.Bookings.CountConfirmed(ctx, activityID)
	if err != nil {
		return e.failed(log, activityID, fmt.Errorf("capacity check: %w", err))
	}
	if confirmed >= ceiling {
		return e.full(log, act, confirmed, ceiling)
	}

	now := e.clock()
	booking := models.Booking{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		UserID:     userID,
		Status:     models.BookingConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	position, err := e.Bookings.Commit(ctx, &booking, ceiling)
	switch {
	case errors.Is(err, repository.ErrAlreadyBooked):
		return e.finish(log, Outcome{
			Kind:       OutcomeAlreadyBooked,
			ActivityID: activityID,
			Message:    fmt.Sprintf("You've already booked %s. No need to book it again!", act.Title),
		})
	case errors.Is(err, repository.ErrCapacityReached):
		return e.full(log, act, ceiling, ceiling)
	case errors.Is(err, repository.ErrUnavailable):
		return e.finish(log, Outcome{
			Kind:       OutcomeUnavailable,
			ActivityID: activityID,
			Message:    fmt.Sprintf("Sorry, %s is no longer available for booking.", act.Title),
		})
	case errors.Is(err, repository.ErrNotFound):
		return e.finish(log, Outcome{
			Kind:       OutcomeNotFound,
			ActivityID: activityID,
			Message:    "Sorry, I couldn't find that activity. It may no longer be listed.",
		})
	case err != nil:
		return e.failed(log, activityID, fmt.Errorf("commit: %w", err))
	}
	// The counter can lag the bookings collection; never report a seat
	// number below the confirmed bookings that precede this one.
	if position < confirmed+1 {
		position = confirmed + 1
	}

	snap.recordBooking(booking, position)
	if e.Notifier != nil {
		go e.Notifier.BookingConfirmed(context.WithoutCancel(ctx), booking, *act)
	}

	return e.finish(log, Outcome{
		Kind:       OutcomeSuccess,
		ActivityID: activityID,
		Booking:    &booking,
		Count:      position,
		Message: fmt.Sprintf("✅ You're booked for %s! You are participant #%d of %d.",
			act.Title, position, ceiling),
	})
}

func (e *BookingExecutor) full(log *zap.Logger, act *models.Activity, count, ceiling int) Outcome {
	return e.finish(log, Outcome{
		Kind:       OutcomeFull,
		ActivityID: act.ID,
		Count:      count,
		Message: fmt.Sprintf("Sorry, %s is fully booked (%d of %d participants).",
			act.Title, count, ceiling),
	})
}

func (e *BookingExecutor) failed(log *zap.Logger, activityID string, err error) Outcome {
	log.Error("booking failed", zap.Error(err))
	return Outcome{
		Kind:       OutcomeFailed,
		ActivityID: activityID,
		Message:    "Sorry, I couldn't complete the booking right now. Please try again.",
	}
}

func (e *BookingExecutor) finish(log *zap.Logger, o Outcome) Outcome {
	log.Info("booking attempt", zap.String("outcome", string(o.Kind)), zap.Int("count", o.Count))
	return o
}
