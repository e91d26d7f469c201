package reminders

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/robfig/cron/v3"

	"github.com/hashiroii/tiyin-server/internal/config"
	"github.com/hashiroii/tiyin-server/internal/logger"
	"github.com/hashiroii/tiyin-server/internal/metrics"
	"github.com/hashiroii/tiyin-server/internal/money"
	"github.com/hashiroii/tiyin-server/internal/preferences"
	"github.com/hashiroii/tiyin-server/internal/subscription"
)

// pushSender delivers one renewal reminder to all of a user's devices.
type pushSender interface {
	SendRenewalReminder(ctx context.Context, userID, serviceName, formattedCost string, daysUntil int) error
}

// Scheduler runs a daily sweep over live sessions and pushes a reminder for
// every subscription renewing within the configured window.
type Scheduler struct {
	cron        *cron.Cron
	sessions    *subscription.Manager
	preferences *preferences.Service
	push        pushSender
	logger      *logger.Logger
}

// NewScheduler creates the reminder scheduler.
func NewScheduler(
	sessions *subscription.Manager,
	preferences *preferences.Service,
	push pushSender,
	logger *logger.Logger,
) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		sessions:    sessions,
		preferences: preferences,
		push:        push,
		logger:      logger,
	}
}

// Start registers the cron entry and begins scheduling.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(config.AppConfig.RemindersCron, s.Run); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("reminder scheduler started",
		slog.String("schedule", config.AppConfig.RemindersCron),
		slog.Int("days_ahead", config.AppConfig.ReminderDaysAhead))
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("reminder scheduler stopped")
}

// Run executes one sweep. Exported so a sweep can be triggered outside the
// cron schedule.
func (s *Scheduler) Run() {
	s.sweep(civil.DateOf(time.Now().UTC()))
}

func (s *Scheduler) sweep(today civil.Date) {
	ctx := context.Background()
	log := s.logger.WithComponent("reminders")

	userIDs := s.sessions.ActiveUserIDs()
	sent := 0
	for _, userID := range userIDs {
		prefs := s.preferences.Get(ctx, userID)
		if !prefs.PushRemindersEnabled {
			continue
		}

		for _, sub := range s.sessions.Session(userID).Snapshot() {
			days := sub.DaysUntilNextPayment(today)
			if days > config.AppConfig.ReminderDaysAhead {
				continue
			}

			cost := money.FormatCost(sub.Amount, sub.Currency)
			if err := s.push.SendRenewalReminder(ctx, userID, sub.Service.Name, cost, days); err != nil {
				log.Warn("failed to send renewal reminder",
					slog.String("user_id", userID),
					slog.String("service", sub.Service.Name),
					slog.String("error", err.Error()))
				continue
			}
			metrics.RemindersSent.Inc()
			sent++
		}
	}

	log.Info("reminder sweep complete",
		slog.Int("users", len(userIDs)),
		slog.Int("reminders_sent", sent))
}
