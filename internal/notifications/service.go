package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/messaging"

	"github.com/hashiroii/tiyin-server/internal/logger"
)

// Service handles sending push notifications via Firebase Cloud Messaging.
type Service struct {
	messagingClient *messaging.Client
	tokenManager    *TokenManager
	logger          *logger.Logger
	enabled         bool
}

// NewService creates a new push notification service.
func NewService(
	messagingClient *messaging.Client,
	firestoreClient *firestore.Client,
	logger *logger.Logger,
	enabled bool,
) *Service {
	return &Service{
		messagingClient: messagingClient,
		tokenManager:    NewTokenManager(firestoreClient, logger),
		logger:          logger,
		enabled:         enabled,
	}
}

// SendRenewalReminder notifies a user that a subscription renews soon.
func (s *Service) SendRenewalReminder(
	ctx context.Context,
	userID string,
	serviceName string,
	formattedCost string,
	daysUntil int,
) error {
	var body string
	switch daysUntil {
	case 0:
		body = fmt.Sprintf("%s renews today for %s.", serviceName, formattedCost)
	case 1:
		body = fmt.Sprintf("%s renews tomorrow for %s.", serviceName, formattedCost)
	default:
		body = fmt.Sprintf("%s renews in %d days for %s.", serviceName, daysUntil, formattedCost)
	}

	notification := PushNotification{
		Title: "Upcoming payment",
		Body:  body,
		Data: map[string]string{
			"user_id":      userID,
			"service_name": serviceName,
			"type":         string(TypeRenewalReminder),
		},
	}

	return s.sendNotification(ctx, userID, notification)
}

// sendNotification sends a notification to all of a user's registered devices.
func (s *Service) sendNotification(
	ctx context.Context,
	userID string,
	notification PushNotification,
) error {
	log := s.logger.WithContext(ctx).WithComponent("push-notifications")

	if !s.enabled {
		log.Debug("push notifications disabled, skipping",
			slog.String("user_id", userID),
			slog.String("notification_type", notification.Data["type"]))
		return nil
	}

	tokens, err := s.tokenManager.GetUserTokens(ctx, userID)
	if err != nil {
		log.Warn("failed to retrieve push tokens",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to retrieve push tokens: %w", err)
	}

	successCount := 0
	failureCount := 0
	for _, tokenInfo := range tokens {
		result := s.sendToDevice(ctx, tokenInfo, notification)
		if result.Success {
			successCount++
		} else {
			failureCount++
			log.Warn("failed to send push notification",
				slog.String("user_id", userID),
				slog.String("device_id", tokenInfo.DeviceID),
				slog.String("error", result.Error))
		}
	}

	log.Info("push notifications sent",
		slog.String("user_id", userID),
		slog.String("type", notification.Data["type"]),
		slog.Int("total_devices", len(tokens)),
		slog.Int("successful", successCount),
		slog.Int("failed", failureCount))

	// Return error only if all notifications failed
	if failureCount == len(tokens) {
		return fmt.Errorf("all %d notification(s) failed", failureCount)
	}

	return nil
}

// sendToDevice sends a notification to a single device.
func (s *Service) sendToDevice(
	ctx context.Context,
	tokenInfo TokenInfo,
	notification PushNotification,
) SendResult {
	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
		Data:  notification.Data,
		Token: tokenInfo.Token,
	}

	response, err := s.messagingClient.Send(ctx, message)
	if err != nil {
		return SendResult{
			Token:   tokenInfo.Token[:min(10, len(tokenInfo.Token))] + "...",
			Success: false,
			Error:   err.Error(),
		}
	}

	return SendResult{
		Token:    tokenInfo.Token[:min(10, len(tokenInfo.Token))] + "...",
		Success:  true,
		Response: response,
	}
}
