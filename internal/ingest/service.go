package ingest

import (
	"context"
	"log/slog"

	"github.com/hashiroii/tiyin-server/internal/detect"
	"github.com/hashiroii/tiyin-server/internal/history"
	"github.com/hashiroii/tiyin-server/internal/logger"
	"github.com/hashiroii/tiyin-server/internal/metrics"
	"github.com/hashiroii/tiyin-server/internal/preferences"
	"github.com/hashiroii/tiyin-server/internal/subscription"
)

// Service runs notification events through the classifier and applies the
// results to the user's subscription list.
type Service struct {
	classifier    *detect.Classifier
	subscriptions *subscription.Service
	preferences   *preferences.Service
	history       *history.Service
	logger        *logger.Logger
}

// NewService creates the ingest service.
func NewService(
	classifier *detect.Classifier,
	subscriptions *subscription.Service,
	preferences *preferences.Service,
	history *history.Service,
	logger *logger.Logger,
) *Service {
	return &Service{
		classifier:    classifier,
		subscriptions: subscriptions,
		preferences:   preferences,
		history:       history,
		logger:        logger,
	}
}

// Process classifies one event and merges any resulting record into the
// user's list. It always returns a result; classification never fails, it
// only declines.
func (s *Service) Process(ctx context.Context, userID string, event detect.Event) Result {
	metrics.NotificationsIngested.Inc()
	log := s.logger.WithContext(logger.WithPackage(ctx, event.Package))

	prefs := s.preferences.Get(ctx, userID)
	if !prefs.NotificationsEnabled {
		metrics.NotificationsDropped.WithLabelValues("notifications_disabled").Inc()
		s.record(ctx, userID, event, history.Detection{Outcome: history.OutcomeDisabled})
		return Result{Outcome: history.OutcomeDisabled}
	}

	sub, ok := s.classifier.Classify(event)
	if !ok {
		metrics.NotificationsDropped.WithLabelValues("ignored_bank").Inc()
		s.record(ctx, userID, event, history.Detection{Outcome: history.OutcomeBank})
		log.Debug("bank notification without recurring payment signal, ignored")
		return Result{Outcome: history.OutcomeBank}
	}

	metrics.NotificationsClassified.Inc()
	s.subscriptions.ApplyRecord(ctx, userID, *sub, "notification")

	s.record(ctx, userID, event, history.Detection{
		Outcome:     history.OutcomeClassified,
		ServiceName: sub.Service.Name,
		Amount:      sub.Amount.String(),
		Currency:    sub.Currency,
		Period:      string(sub.Period),
	})

	log.Info("notification classified as subscription",
		slog.String("service", sub.Service.Name),
		slog.String("amount", sub.Amount.String()),
		slog.String("currency", sub.Currency),
		slog.String("period", string(sub.Period)))

	return Result{Outcome: history.OutcomeClassified, Subscription: sub}
}

func (s *Service) record(ctx context.Context, userID string, event detect.Event, d history.Detection) {
	d.UserID = userID
	d.Package = event.Package
	d.AppName = event.AppName
	d.PostedAt = event.PostedAt
	s.history.Record(ctx, d)
}
