package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking links a user to an activity. At most one non-cancelled booking
// exists per (UserID, ActivityID).
type Booking struct {
	ID         string        `bson:"id" json:"id" firestore:"-"`
	ActivityID string        `bson:"activityId" json:"activityId" firestore:"activityId"`
	UserID     string        `bson:"userId" json:"userId" firestore:"userId"`
	Status     BookingStatus `bson:"status" json:"status" firestore:"status"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt" firestore:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt" json:"updatedAt" firestore:"updatedAt"`
}

// Active reports whether the booking still holds a seat.
func (b Booking) Active() bool {
	return b.Status != BookingCancelled
}
