package models

import "time"

// ReminderPayload is the queued body of an activity reminder push.
type ReminderPayload struct {
	BookingID  string    `json:"bookingId"`
	UserID     string    `json:"userId"`
	ActivityID string    `json:"activityId"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	FireAt     time.Time `json:"fireAt"`
}
