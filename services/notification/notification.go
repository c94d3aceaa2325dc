package notification

import (
	"context"
	"fmt"

	userRepo "shopline/database/repository/user"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// FCMNotificationService is the production implementation.
type FCMNotificationService struct {
	client *messaging.Client
	users  userRepo.UserRepository
}

// NewFCMNotificationService initializes the Firebase app from the
// configured service account file.
func NewFCMNotificationService(ctx context.Context, credentialsFile string, users userRepo.UserRepository) (*FCMNotificationService, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("notification: failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("notification: failed to initialize messaging client: %w", err)
	}
	return &FCMNotificationService{client: client, users: users}, nil
}

// SendUserPushNotification looks up a user's FCM token and sends a push.
func (s *FCMNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not fetch user %s: %w", userID, err)
	}
	if u == nil {
		return fmt.Errorf("SendUserPushNotification: user %s not found", userID)
	}
	if u.FCMToken == "" {
		// Nothing to deliver to; treated as done rather than a failure.
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := s.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendUserPushNotification: send to user %s failed: %w", userID, err)
	}
	return nil
}
