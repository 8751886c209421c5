package notification

import (
	"context"
	"fmt"

	"poojaseva/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Sender delivers a single FCM message. *messaging.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendProviderPushNotification(ctx context.Context, provider models.Provider, title, body string, data map[string]string) error
	NotifyNewBooking(ctx context.Context, provider models.Provider, booking models.Booking) error
	NotifyAssignment(ctx context.Context, provider models.Provider, booking models.Booking) error
}

// DefaultNotificationService pushes through FCM. A nil Sender disables pushes.
type DefaultNotificationService struct {
	Sender Sender
	Logger *zap.Logger
}

// SendProviderPushNotification sends a push to the provider's registered device.
// Providers without a token are skipped silently.
func (s *DefaultNotificationService) SendProviderPushNotification(ctx context.Context, provider models.Provider, title, body string, data map[string]string) error {
	if s.Sender == nil || provider.FCMToken == "" {
		s.logger().Debug("push skipped", zap.String("provider", provider.ID))
		return nil
	}
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "provider"
	}

	msg := &messaging.Message{
		Token: provider.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	id, err := s.Sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendProviderPushNotification: failed to send FCM message: %w", err)
	}
	s.logger().Info("push sent", zap.String("provider", provider.ID), zap.String("message", id))
	return nil
}

func (s *DefaultNotificationService) NotifyNewBooking(ctx context.Context, provider models.Provider, booking models.Booking) error {
	body := fmt.Sprintf("%s on %s", bookingTitle(booking), booking.Date)
	if booking.TimeSlot != "" {
		body += " at " + booking.TimeSlot
	}
	return s.SendProviderPushNotification(ctx, provider, "New booking request", body, bookingData(booking, "booking_new"))
}

func (s *DefaultNotificationService) NotifyAssignment(ctx context.Context, provider models.Provider, booking models.Booking) error {
	body := fmt.Sprintf("You have been assigned %s on %s", bookingTitle(booking), booking.Date)
	return s.SendProviderPushNotification(ctx, provider, "Booking assigned", body, bookingData(booking, "booking_assigned"))
}

func bookingTitle(b models.Booking) string {
	if b.PoojaName != "" {
		return b.PoojaName
	}
	return "a pooja"
}

func bookingData(b models.Booking, kind string) map[string]string {
	return map[string]string{
		"type":      kind,
		"bookingId": b.ID,
		"mode":      string(b.ServiceMode),
		"date":      b.Date,
	}
}

func (s *DefaultNotificationService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
