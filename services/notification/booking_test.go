package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"trailmate/models"

	"go.uber.org/zap"
)

type recordingPush struct {
	userIDs []string
	err     error
}

func (r *recordingPush) SendUserPushNotification(_ context.Context, userID, _, _ string, _ map[string]string) error {
	r.userIDs = append(r.userIDs, userID)
	return r.err
}

type recordingReminders struct {
	payloads []models.ReminderPayload
}

func (r *recordingReminders) ScheduleReminder(_ context.Context, p models.ReminderPayload) error {
	r.payloads = append(r.payloads, p)
	return nil
}

func newNotifier(push *recordingPush, rem *recordingReminders, now time.Time) *BookingNotifier {
	return &BookingNotifier{
		Push:      push,
		Reminders: rem,
		Lead:      2 * time.Hour,
		Zone:      time.UTC,
		Logger:    zap.NewNop(),
		now:       func() time.Time { return now },
	}
}

func TestBookingConfirmedSchedulesReminderBeforeStart(t *testing.T) {
	push := &recordingPush{}
	rem := &recordingReminders{}
	n := newNotifier(push, rem, time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))

	n.BookingConfirmed(context.Background(),
		models.Booking{ID: "b1", UserID: "u1"},
		models.Activity{ID: "act1", Title: "Sunrise hike", StartDate: "2026-05-02", StartTime: "06:30"},
	)

	if len(push.userIDs) != 1 || push.userIDs[0] != "u1" {
		t.Fatalf("expected one push to u1, got %v", push.userIDs)
	}
	if len(rem.payloads) != 1 {
		t.Fatalf("expected one reminder, got %d", len(rem.payloads))
	}
	want := time.Date(2026, 5, 2, 4, 30, 0, 0, time.UTC)
	if !rem.payloads[0].FireAt.Equal(want) {
		t.Fatalf("expected fire time %s, got %s", want, rem.payloads[0].FireAt)
	}
}

func TestBookingConfirmedSkipsPastOrUndatedReminders(t *testing.T) {
	rem := &recordingReminders{}
	n := newNotifier(&recordingPush{}, rem, time.Date(2026, 5, 2, 6, 0, 0, 0, time.UTC))

	n.BookingConfirmed(context.Background(), models.Booking{ID: "b1"},
		models.Activity{ID: "a", StartDate: "2026-05-02", StartTime: "06:30"})
	n.BookingConfirmed(context.Background(), models.Booking{ID: "b2"},
		models.Activity{ID: "b"})

	if len(rem.payloads) != 0 {
		t.Fatalf("expected no reminders, got %d", len(rem.payloads))
	}
}

func TestBookingConfirmedIgnoresPushFailure(t *testing.T) {
	rem := &recordingReminders{}
	n := newNotifier(&recordingPush{err: errors.New("no token")}, rem, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	n.BookingConfirmed(context.Background(), models.Booking{ID: "b1"},
		models.Activity{ID: "a", StartDate: "2026-05-03"})

	if len(rem.payloads) != 1 {
		t.Fatalf("expected reminder despite push failure, got %d", len(rem.payloads))
	}
}
