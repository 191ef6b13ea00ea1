package notification

import (
	"context"
	"fmt"
	"time"

	"trailmate/models"

	"go.uber.org/zap"
)

// ReminderScheduler queues a reminder for later delivery.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload) error
}

// BookingNotifier follows up a confirmed booking with a push and an optional
// reminder before the activity starts. Either dependency may be nil.
type BookingNotifier struct {
	Push      NotificationService
	Reminders ReminderScheduler
	Lead      time.Duration
	Zone      *time.Location
	Logger    *zap.Logger

	now func() time.Time
}

func (n *BookingNotifier) clock() time.Time {
	if n.now != nil {
		return n.now()
	}
	return time.Now()
}

func (n *BookingNotifier) BookingConfirmed(ctx context.Context, booking models.Booking, activity models.Activity) {
	if n.Push != nil {
		data := map[string]string{
			"type":       "booking_confirmed",
			"bookingId":  booking.ID,
			"activityId": activity.ID,
		}
		body := fmt.Sprintf("You're booked for %s.", activity.Title)
		if err := n.Push.SendUserPushNotification(ctx, booking.UserID, "Booking confirmed", body, data); err != nil {
			n.Logger.Warn("booking push failed", zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	if n.Reminders == nil || n.Lead <= 0 {
		return
	}
	zone := n.Zone
	if zone == nil {
		zone = time.Local
	}
	start, ok := activity.StartsAt(zone)
	if !ok {
		return
	}
	fireAt := start.Add(-n.Lead)
	if !fireAt.After(n.clock()) {
		return
	}
	payload := models.ReminderPayload{
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		ActivityID: activity.ID,
		Title:      "Coming up: " + activity.Title,
		Body:       fmt.Sprintf("%s starts at %s.", activity.Title, start.Format("Mon 2 Jan 15:04")),
		FireAt:     fireAt,
	}
	if err := n.Reminders.ScheduleReminder(ctx, payload); err != nil {
		n.Logger.Warn("reminder scheduling failed", zap.String("bookingID", booking.ID), zap.Error(err))
	}
}
