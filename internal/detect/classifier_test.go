package detect

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/hashiroii/tiyin-server/internal/catalog"
	"github.com/hashiroii/tiyin-server/internal/subscription"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c := NewClassifier(catalog.New(), nil)
	c.now = func() time.Time { return testNow }
	return c
}

func TestClassifyKnownService(t *testing.T) {
	c := newTestClassifier(t)

	sub, ok := c.Classify(Event{
		Package: "com.netflix.mediaclient",
		Title:   "Netflix",
		Body:    "Your subscription renewed for $15.99 monthly",
	})
	if !ok {
		t.Fatal("expected a subscription record")
	}

	if sub.Service.Name != "Netflix" {
		t.Errorf("service name = %q, want Netflix", sub.Service.Name)
	}
	if sub.Service.Domain != "netflix.com" {
		t.Errorf("service domain = %q, want netflix.com", sub.Service.Domain)
	}
	if sub.Service.Category != catalog.CategoryStreaming {
		t.Errorf("category = %q, want STREAMING", sub.Service.Category)
	}
	if !sub.Amount.Equal(decimal.RequireFromString("15.99")) {
		t.Errorf("amount = %s, want 15.99", sub.Amount)
	}
	if sub.Currency != "USD" {
		t.Errorf("currency = %q, want USD", sub.Currency)
	}
	if sub.Period != subscription.PeriodMonthly {
		t.Errorf("period = %q, want MONTHLY", sub.Period)
	}
	if sub.LogoURL == "" {
		t.Error("expected a logo URL for a known domain")
	}
}

func TestClassifyBankBalanceIgnored(t *testing.T) {
	c := newTestClassifier(t)

	// Balance alerts carry an amount but no recurring vocabulary
	if _, ok := c.Classify(Event{
		Package: "kz.kaspi.mobile",
		Title:   "Kaspi",
		Body:    "Your balance is $500",
	}); ok {
		t.Fatal("bank balance alert must not classify")
	}
}

func TestClassifyBankChargeWithRecurringSignal(t *testing.T) {
	c := newTestClassifier(t)

	sub, ok := c.Classify(Event{
		Package: "kz.kaspi.mobile",
		Title:   "Kaspi",
		Body:    "Netflix subscription charged $15.99 monthly",
	})
	if !ok {
		t.Fatal("expected a subscription record")
	}
	if sub.Service.Name != "Netflix" {
		t.Errorf("service name = %q, want Netflix (recognized from text)", sub.Service.Name)
	}
	if sub.Period != subscription.PeriodMonthly {
		t.Errorf("period = %q, want MONTHLY", sub.Period)
	}
}

func TestClassifyUnknownPackageFallsBack(t *testing.T) {
	c := newTestClassifier(t)

	sub, ok := c.Classify(Event{
		Package: "com.example.fancyapp",
		Title:   "Receipt",
		Body:    "Thanks for your payment of 4.99",
	})
	if !ok {
		t.Fatal("expected a subscription record")
	}

	if sub.Service.Name != "fancyapp" {
		t.Errorf("service name = %q, want trailing package segment fancyapp", sub.Service.Name)
	}
	if sub.Service.Category != catalog.CategoryOther {
		t.Errorf("category = %q, want OTHER", sub.Service.Category)
	}
	if sub.Service.PrimaryColor != catalog.DefaultPrimaryColor {
		t.Errorf("primary color = %#x, want default", sub.Service.PrimaryColor)
	}
	if !sub.Amount.Equal(decimal.RequireFromString("4.99")) {
		t.Errorf("amount = %s, want 4.99", sub.Amount)
	}
}

func TestClassifyUsesProvidedAppName(t *testing.T) {
	c := newTestClassifier(t)

	sub, ok := c.Classify(Event{
		Package: "com.example.unknown",
		AppName: "Fancy App",
		Body:    "Payment received",
	})
	if !ok {
		t.Fatal("expected a subscription record")
	}
	if sub.Service.Name != "Fancy App" {
		t.Errorf("service name = %q, want Fancy App", sub.Service.Name)
	}
}

func TestClassifyRussianNotification(t *testing.T) {
	c := newTestClassifier(t)

	sub, ok := c.Classify(Event{
		Package: "com.example.kino",
		Title:   "Кино",
		Body:    "Списано ₸2990 ежемесячно",
	})
	if !ok {
		t.Fatal("expected a subscription record")
	}
	if sub.Currency != "KZT" {
		t.Errorf("currency = %q, want KZT", sub.Currency)
	}
	if !sub.Amount.Equal(decimal.NewFromInt(2990)) {
		t.Errorf("amount = %s, want 2990", sub.Amount)
	}
	if sub.Period != subscription.PeriodMonthly {
		t.Errorf("period = %q, want MONTHLY", sub.Period)
	}
}

func TestClassifyDefaultDates(t *testing.T) {
	c := newTestClassifier(t)
	today := civil.DateOf(testNow)

	sub, ok := c.Classify(Event{
		Package: "com.spotify.music",
		Body:    "Spotify Premium payment",
	})
	if !ok {
		t.Fatal("expected a subscription record")
	}

	if got, want := sub.NextPaymentDate, today.AddDays(30); got != want {
		t.Errorf("next payment date = %v, want %v", got, want)
	}
	if got, want := sub.CurrentPaymentDate, today.AddDays(-15); got != want {
		t.Errorf("current payment date = %v, want %v", got, want)
	}
}

func TestClassifyExtractsDateFromBody(t *testing.T) {
	c := newTestClassifier(t)

	sub, ok := c.Classify(Event{
		Package: "com.netflix.mediaclient",
		Title:   "Renews 1.1.2030",
		Body:    "Your subscription renews on 24.5.2026 for $15.99",
	})
	if !ok {
		t.Fatal("expected a subscription record")
	}

	// Body takes priority over title
	want := civil.Date{Year: 2026, Month: time.May, Day: 24}
	if sub.NextPaymentDate != want {
		t.Errorf("next payment date = %v, want %v", sub.NextPaymentDate, want)
	}
}
