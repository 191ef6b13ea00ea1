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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll       *mongo.Collection
	activities *mongo.Collection
}

var activeStatuses = bson.A{string(models.BookingPending), string(models.BookingConfirmed)}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Booking
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return out, nil
}

func (r *MongoBookingRepo) FindActive(ctx context.Context, userID, activityID string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"userId":     userID,
		"activityId": activityID,
		"status":     bson.M{"$in": activeStatuses},
	}
	var b models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up booking: %w", err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) CountConfirmed(ctx context.Context, activityID string) (int, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"activityId": activityID,
		"status":     string(models.BookingConfirmed),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return int(n), nil
}

// Commit reserves a seat with a bounded $inc on an available activity, then
// inserts the booking. A duplicate-key error from the partial unique index
// releases the seat.
func (r *MongoBookingRepo) Commit(ctx context.Context, b *models.Booking, ceiling int) (int, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":        b.ActivityID,
		"isActive":  true,
		"isExpired": bson.M{"$ne": true},
		"$or": bson.A{
			bson.M{"currentParticipants": bson.M{"$lt": ceiling}},
			bson.M{"currentParticipants": bson.M{"$exists": false}},
		},
	}
	update := bson.M{
		"$inc":         bson.M{"currentParticipants": 1},
		"$currentDate": bson.M{"updatedAt": true},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"currentParticipants": 1})

	var reserved struct {
		CurrentParticipants int `bson:"currentParticipants"`
	}
	if err := r.activities.FindOneAndUpdate(ctx, filter, update, opts).Decode(&reserved); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, r.classifyMiss(ctx, b.ActivityID)
		}
		return 0, fmt.Errorf("failed to reserve seat: %w", err)
	}

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		rbErr := r.releaseSeat(b.ActivityID)
		if mongo.IsDuplicateKeyError(err) {
			if rbErr != nil {
				return 0, fmt.Errorf("%w (%v)", repository.ErrAlreadyBooked, rbErr)
			}
			return 0, repository.ErrAlreadyBooked
		}
		return 0, fmt.Errorf("failed to insert booking: %w", errors.Join(err, rbErr))
	}
	return reserved.CurrentParticipants, nil
}

// classifyMiss explains why the reserving update matched nothing.
func (r *MongoBookingRepo) classifyMiss(ctx context.Context, activityID string) error {
	opts := options.FindOne().SetProjection(bson.M{"isActive": 1, "isExpired": 1})
	var act models.Activity
	if err := r.activities.FindOne(ctx, bson.M{"id": activityID}, opts).Decode(&act); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to look up activity: %w", err)
	}
	if !act.Available() {
		return repository.ErrUnavailable
	}
	return repository.ErrCapacityReached
}

// releaseSeat runs on its own context so a cancelled request still rolls back.
func (r *MongoBookingRepo) releaseSeat(activityID string) error {
	ctx, cancel := newContext(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.activities.UpdateOne(ctx,
		bson.M{"id": activityID, "currentParticipants": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"currentParticipants": -1}},
	)
	if err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("release seat: activity %s not found or counter already zero", activityID)
	}
	return nil
}
