package notification

import (
	"context"
	"fmt"

	"trailmate/database/repository"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// Sender is the subset of *messaging.Client used here.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	profiles repository.ProfileRepository
	sender   Sender
	logger   *zap.Logger
}

func NewDefaultNotificationService(profiles repository.ProfileRepository, sender Sender, logger *zap.Logger) (*DefaultNotificationService, error) {
	if profiles == nil || sender == nil {
		return nil, fmt.Errorf("notification service initialization error: profile repository or sender is nil")
	}
	return &DefaultNotificationService{profiles: profiles, sender: sender, logger: logger}, nil
}

// SendUserPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if p.FCMToken == "" {
		return fmt.Errorf("SendUserPushNotification: user %s has no FCM token", userID)
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "user"
	}

	msg := &messaging.Message{
		Token: p.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	s.logger.Debug("push sent", zap.String("userID", userID), zap.String("messageID", id))
	return nil
}
