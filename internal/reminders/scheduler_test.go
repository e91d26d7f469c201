package reminders

import (
	"context"
	"log/slog"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/hashiroii/tiyin-server/internal/config"
	"github.com/hashiroii/tiyin-server/internal/logger"
	"github.com/hashiroii/tiyin-server/internal/preferences"
	"github.com/hashiroii/tiyin-server/internal/subscription"
)

type sentReminder struct {
	userID    string
	service   string
	daysUntil int
}

type fakeSender struct {
	sent []sentReminder
}

func (f *fakeSender) SendRenewalReminder(ctx context.Context, userID, serviceName, formattedCost string, daysUntil int) error {
	f.sent = append(f.sent, sentReminder{userID: userID, service: serviceName, daysUntil: daysUntil})
	return nil
}

func dueSub(name string, next civil.Date) subscription.Subscription {
	return subscription.Subscription{
		Service:         subscription.ServiceInfo{Name: name, Domain: name + ".com"},
		Amount:          decimal.RequireFromString("9.99"),
		Currency:        "USD",
		Period:          subscription.PeriodMonthly,
		NextPaymentDate: next,
	}
}

func newTestScheduler(t *testing.T) (*Scheduler, *subscription.Manager, *preferences.Service, *fakeSender) {
	t.Helper()

	config.AppConfig = &config.Config{ReminderDaysAhead: 3}

	log := logger.New(logger.Config{Level: slog.LevelError})
	sessions := subscription.NewManager()
	prefs := preferences.NewService(nil, log)
	sender := &fakeSender{}
	return NewScheduler(sessions, prefs, sender, log), sessions, prefs, sender
}

func TestSweepWindowBoundary(t *testing.T) {
	scheduler, sessions, _, sender := newTestScheduler(t)
	today := civil.Date{Year: 2026, Month: 8, Day: 30}

	sessions.Session("user-1").Replace([]subscription.Subscription{
		dueSub("Netflix", today.AddDays(3)), // on the boundary, sent
		dueSub("Spotify", today.AddDays(4)), // one day past, skipped
		dueSub("Adobe", today),              // due today, sent
	})

	scheduler.sweep(today)

	if len(sender.sent) != 2 {
		t.Fatalf("sent %d reminders, want 2: %v", len(sender.sent), sender.sent)
	}
	byService := map[string]int{}
	for _, r := range sender.sent {
		byService[r.service] = r.daysUntil
	}
	if days, ok := byService["Netflix"]; !ok || days != 3 {
		t.Errorf("Netflix reminder = (%d, %v), want (3, true)", days, ok)
	}
	if days, ok := byService["Adobe"]; !ok || days != 0 {
		t.Errorf("Adobe reminder = (%d, %v), want (0, true)", days, ok)
	}
	if _, ok := byService["Spotify"]; ok {
		t.Error("Spotify is outside the window but got a reminder")
	}
}

func TestSweepHonorsPushPreference(t *testing.T) {
	scheduler, sessions, prefs, sender := newTestScheduler(t)
	today := civil.Date{Year: 2026, Month: 8, Day: 30}

	sessions.Session("user-1").Replace([]subscription.Subscription{
		dueSub("Netflix", today.AddDays(1)),
	})

	disabled := false
	if _, err := prefs.Patch(context.Background(), "user-1", preferences.PatchRequest{
		PushRemindersEnabled: &disabled,
	}); err != nil {
		t.Fatalf("patch failed: %v", err)
	}

	scheduler.sweep(today)

	if len(sender.sent) != 0 {
		t.Fatalf("sent %d reminders for a user with push reminders off, want 0", len(sender.sent))
	}
}
