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
)

// MongoActivityRepo implements ActivityRepository using MongoDB.
type MongoActivityRepo struct {
	coll *mongo.Collection
}

func (r *MongoActivityRepo) ListAvailable(ctx context.Context) ([]models.Activity, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true, "isExpired": false})
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Activity
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return out, nil
}

func (r *MongoActivityRepo) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var a models.Activity
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch activity %s: %w", id, err)
	}
	return &a, nil
}
