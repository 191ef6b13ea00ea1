package mongoRepo

import (
	"context"
	"fmt"
	"time"

	"trailmate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields frequently used in queries.
// The partial unique index on bookings is what rejects a second active
// booking for the same user and activity.
func ensureIndexes(db *mongo.Database) error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	specs := map[string][]mongo.IndexModel{
		locationsCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "isActive", Value: 1}}},
		},
		activitiesCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "isExpired", Value: 1}}},
		},
		bookingsCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{
				Keys: bson.D{{Key: "userId", Value: 1}, {Key: "activityId", Value: 1}},
				Options: options.Index().
					SetName("uniq_active_user_activity").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{
						"status": bson.M{"$in": bson.A{string(models.BookingPending), string(models.BookingConfirmed)}},
					}),
			},
			{Keys: bson.D{{Key: "activityId", Value: 1}, {Key: "status", Value: 1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for coll, idx := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
