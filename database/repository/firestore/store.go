package firestoreRepo

import (
	"context"
	"fmt"

	"trailmate/database/repository"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const (
	locationsCollection  = "locations"
	activitiesCollection = "activities"
	bookingsCollection   = "bookings"
	usersCollection      = "users"
)

// NewStore builds every Firestore-backed repository on client.
func NewStore(client *firestore.Client) repository.Store {
	return repository.Store{
		Locations:  &FirestoreLocationRepo{client: client},
		Activities: &FirestoreActivityRepo{client: client},
		Bookings:   &FirestoreBookingRepo{client: client},
		Profiles:   &FirestoreProfileRepo{client: client},
		Ping: func(ctx context.Context) error {
			iter := client.Collection(activitiesCollection).Limit(1).Documents(ctx)
			defer iter.Stop()
			if _, err := iter.Next(); err != nil && err != iterator.Done {
				return fmt.Errorf("firestore ping: %w", err)
			}
			return nil
		},
		Close: func(context.Context) error {
			return client.Close()
		},
	}
}

// collect drains iter, decoding each document with decode.
func collect[T any](iter *firestore.DocumentIterator, decode func(*firestore.DocumentSnapshot) (T, error)) ([]T, error) {
	defer iter.Stop()

	var out []T
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, err
		}
		item, err := decode(snap)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", snap.Ref.ID, err)
		}
		out = append(out, item)
	}
	return out, nil
}
