package firestoreRepo

import (
	"context"
	"fmt"

	"trailmate/database/repository"
	"trailmate/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreActivityRepo implements ActivityRepository using Firestore.
type FirestoreActivityRepo struct {
	client *firestore.Client
}

func decodeActivity(snap *firestore.DocumentSnapshot) (models.Activity, error) {
	var a models.Activity
	if err := snap.DataTo(&a); err != nil {
		return a, err
	}
	a.ID = snap.Ref.ID
	return a, nil
}

func (r *FirestoreActivityRepo) ListAvailable(ctx context.Context) ([]models.Activity, error) {
	q := r.client.Collection(activitiesCollection).
		Where("isActive", "==", true).
		Where("isExpired", "==", false)
	out, err := collect(q.Documents(ctx), decodeActivity)
	if err != nil {
		return nil, fmt.Errorf("firestore ListAvailable: %w", err)
	}
	return out, nil
}

func (r *FirestoreActivityRepo) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	snap, err := r.client.Collection(activitiesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("firestore GetByID activity: %w", err)
	}
	a, err := decodeActivity(snap)
	if err != nil {
		return nil, fmt.Errorf("firestore GetByID decode: %w", err)
	}
	return &a, nil
}
