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

// FirestoreProfileRepo implements ProfileRepository using Firestore.
type FirestoreProfileRepo struct {
	client *firestore.Client
}

func (r *FirestoreProfileRepo) GetByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	snap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("firestore GetByID profile: %w", err)
	}
	var p models.UserProfile
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("firestore GetByID profile decode: %w", err)
	}
	p.ID = snap.Ref.ID
	return &p, nil
}

func (r *FirestoreProfileRepo) UpdateCredential(ctx context.Context, userID, sealed string) error {
	_, err := r.client.Collection(usersCollection).Doc(userID).Set(ctx, map[string]interface{}{
		"apiKey":    sealed,
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("firestore UpdateCredential: %w", err)
	}
	return nil
}
