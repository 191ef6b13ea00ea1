package mongoRepo

import (
	"context"
	"time"

	"trailmate/database/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	locationsCollection  = "locations"
	activitiesCollection = "activities"
	bookingsCollection   = "bookings"
	usersCollection      = "users"
)

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// NewStore builds every Mongo-backed repository on db and ensures their indexes.
func NewStore(db *mongo.Database, logger *zap.Logger) repository.Store {
	locations := &MongoLocationRepo{coll: db.Collection(locationsCollection)}
	activities := &MongoActivityRepo{coll: db.Collection(activitiesCollection)}
	bookings := &MongoBookingRepo{
		coll:       db.Collection(bookingsCollection),
		activities: db.Collection(activitiesCollection),
	}
	profiles := &MongoProfileRepo{coll: db.Collection(usersCollection)}

	if err := ensureIndexes(db); err != nil {
		logger.Warn("failed to create indexes", zap.Error(err))
	}

	return repository.Store{
		Locations:  locations,
		Activities: activities,
		Bookings:   bookings,
		Profiles:   profiles,
		Ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		},
		Close: func(ctx context.Context) error {
			return db.Client().Disconnect(ctx)
		},
	}
}
