package mongoRepo

import (
	"context"
	"fmt"
	"time"

	"trailmate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoLocationRepo implements LocationRepository using MongoDB.
type MongoLocationRepo struct {
	coll *mongo.Collection
}

func (r *MongoLocationRepo) ListActive(ctx context.Context) ([]models.Location, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Location
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}
	return out, nil
}
