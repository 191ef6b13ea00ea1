package mongoRepo

import (
	"context"
	"errors"
	"testing"

	"trailmate/database/repository"
	"trailmate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// noMatch is the findAndModify reply when the filter selected nothing.
var noMatch = bson.D{{Key: "ok", Value: 1}}

func TestCommitClassifiesRejectedReservation(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	cases := []struct {
		name     string
		activity bson.D
		want     error
	}{
		{"unknown activity", nil, repository.ErrNotFound},
		{"inactive activity", bson.D{{Key: "id", Value: "act1"}, {Key: "isActive", Value: false}}, repository.ErrUnavailable},
		{"expired activity", bson.D{{Key: "id", Value: "act1"}, {Key: "isActive", Value: true}, {Key: "isExpired", Value: true}}, repository.ErrUnavailable},
		{"full activity", bson.D{{Key: "id", Value: "act1"}, {Key: "isActive", Value: true}, {Key: "isExpired", Value: false}}, repository.ErrCapacityReached},
	}
	for _, tc := range cases {
		mt.Run(tc.name, func(mt *mtest.T) {
			ns := mt.DB.Name() + ".activities"
			lookup := mtest.CreateCursorResponse(0, ns, mtest.FirstBatch)
			if tc.activity != nil {
				lookup = mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, tc.activity)
			}
			mt.AddMockResponses(noMatch, lookup)

			repo := &MongoBookingRepo{coll: mt.DB.Collection("bookings"), activities: mt.DB.Collection("activities")}
			b := &models.Booking{ID: "b1", UserID: "u1", ActivityID: "act1", Status: models.BookingConfirmed}
			if _, err := repo.Commit(context.Background(), b, 20); !errors.Is(err, tc.want) {
				mt.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCommitReturnsReservedCount(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("seat reserved", func(mt *mtest.T) {
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: bson.D{{Key: "currentParticipants", Value: 7}}}},
			mtest.CreateSuccessResponse(),
		)

		repo := &MongoBookingRepo{coll: mt.DB.Collection("bookings"), activities: mt.DB.Collection("activities")}
		b := &models.Booking{ID: "b1", UserID: "u1", ActivityID: "act1", Status: models.BookingConfirmed}
		pos, err := repo.Commit(context.Background(), b, 20)
		if err != nil || pos != 7 {
			mt.Fatalf("expected position 7, got %d, %v", pos, err)
		}
	})
}
