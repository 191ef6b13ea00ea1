package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"trailmate/models"
	"trailmate/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type stubPush struct {
	calls []string
	err   error
}

func (s *stubPush) SendUserPushNotification(_ context.Context, userID, title, _ string, data map[string]string) error {
	s.calls = append(s.calls, userID+"|"+title+"|"+data["bookingId"])
	return s.err
}

func TestHandleReminderTaskSendsPush(t *testing.T) {
	push := &stubPush{}
	payload, _ := json.Marshal(models.ReminderPayload{BookingID: "b1", UserID: "u1", Title: "Coming up"})

	err := handleReminderTask(push, zap.NewNop())(context.Background(), asynq.NewTask(tasks.TypeSendReminder, payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(push.calls) != 1 || push.calls[0] != "u1|Coming up|b1" {
		t.Fatalf("unexpected push calls %v", push.calls)
	}
}

func TestHandleReminderTaskSkipsRetryOnBadPayload(t *testing.T) {
	err := handleReminderTask(&stubPush{}, zap.NewNop())(context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
