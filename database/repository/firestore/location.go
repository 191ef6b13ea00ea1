package firestoreRepo

import (
	"context"
	"fmt"

	"trailmate/models"

	"cloud.google.com/go/firestore"
)

// FirestoreLocationRepo implements LocationRepository using Firestore.
type FirestoreLocationRepo struct {
	client *firestore.Client
}

func (r *FirestoreLocationRepo) ListActive(ctx context.Context) ([]models.Location, error) {
	q := r.client.Collection(locationsCollection).Where("isActive", "==", true)
	out, err := collect(q.Documents(ctx), func(snap *firestore.DocumentSnapshot) (models.Location, error) {
		var l models.Location
		if err := snap.DataTo(&l); err != nil {
			return l, err
		}
		l.ID = snap.Ref.ID
		return l, nil
	})
	if err != nil {
		return nil, fmt.Errorf("firestore ListActive locations: %w", err)
	}
	return out, nil
}
