package firestoreRepo

import (
	"context"
	"errors"
	"fmt"

	"trailmate/database/repository"
	"trailmate/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreBookingRepo implements BookingRepository using Firestore.
type FirestoreBookingRepo struct {
	client *firestore.Client
}

func decodeBooking(snap *firestore.DocumentSnapshot) (models.Booking, error) {
	var b models.Booking
	if err := snap.DataTo(&b); err != nil {
		return b, err
	}
	b.ID = snap.Ref.ID
	return b, nil
}

func (r *FirestoreBookingRepo) col() *firestore.CollectionRef {
	return r.client.Collection(bookingsCollection)
}

func (r *FirestoreBookingRepo) pairQuery(userID, activityID string) firestore.Query {
	return r.col().Where("userId", "==", userID).Where("activityId", "==", activityID)
}

func (r *FirestoreBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	out, err := collect(r.col().Where("userId", "==", userID).Documents(ctx), decodeBooking)
	if err != nil {
		return nil, fmt.Errorf("firestore ListByUser: %w", err)
	}
	return out, nil
}

func (r *FirestoreBookingRepo) FindActive(ctx context.Context, userID, activityID string) (*models.Booking, error) {
	all, err := collect(r.pairQuery(userID, activityID).Documents(ctx), decodeBooking)
	if err != nil {
		return nil, fmt.Errorf("firestore FindActive: %w", err)
	}
	for i := range all {
		if all[i].Active() {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (r *FirestoreBookingRepo) CountConfirmed(ctx context.Context, activityID string) (int, error) {
	q := r.col().
		Where("activityId", "==", activityID).
		Where("status", "==", string(models.BookingConfirmed))
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("firestore CountConfirmed: %w", err)
	}
	return len(snaps), nil
}

// Commit checks the pair, availability and the counter and writes both documents inside one transaction.
func (r *FirestoreBookingRepo) Commit(ctx context.Context, b *models.Booking, ceiling int) (int, error) {
	activityRef := r.client.Collection(activitiesCollection).Doc(b.ActivityID)
	bookingRef := r.col().Doc(b.ID)

	var position int
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(r.pairQuery(b.UserID, b.ActivityID)).GetAll()
		if err != nil {
			return err
		}
		for _, snap := range existing {
			st, err := snap.DataAt("status")
			if err != nil || st != string(models.BookingCancelled) {
				return repository.ErrAlreadyBooked
			}
		}

		actSnap, err := tx.Get(activityRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return repository.ErrNotFound
			}
			return err
		}
		var act models.Activity
		if err := actSnap.DataTo(&act); err != nil {
			return err
		}
		if !act.Available() {
			return repository.ErrUnavailable
		}
		if act.CurrentParticipants >= ceiling {
			return repository.ErrCapacityReached
		}

		if err := tx.Update(activityRef, []firestore.Update{
			{Path: "currentParticipants", Value: firestore.Increment(1)},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		}); err != nil {
			return err
		}
		if err := tx.Create(bookingRef, map[string]interface{}{
			"activityId": b.ActivityID,
			"userId":     b.UserID,
			"status":     string(b.Status),
			"createdAt":  firestore.ServerTimestamp,
			"updatedAt":  firestore.ServerTimestamp,
		}); err != nil {
			return err
		}
		position = act.CurrentParticipants + 1
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyBooked),
			errors.Is(err, repository.ErrCapacityReached),
			errors.Is(err, repository.ErrUnavailable),
			errors.Is(err, repository.ErrNotFound):
			return 0, err
		}
		return 0, fmt.Errorf("firestore Commit: %w", err)
	}
	return position, nil
}
