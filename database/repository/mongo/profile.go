package mongoRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trailmate/database/repository"
	"trailmate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

func (r *MongoProfileRepo) GetByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var p models.UserProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile %s: %w", userID, err)
	}
	return &p, nil
}

func (r *MongoProfileRepo) UpdateCredential(ctx context.Context, userID, sealed string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set":         bson.M{"apiKey": sealed},
		"$currentDate": bson.M{"updatedAt": true},
		"$setOnInsert": bson.M{"createdAt": time.Now()},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to update credential for %s: %w", userID, err)
	}
	return nil
}
