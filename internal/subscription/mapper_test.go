package subscription

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"

	"github.com/hashiroii/tiyin-server/internal/catalog"
)

func TestEntityRoundTrip(t *testing.T) {
	sub := Subscription{
		ID: "doc-id",
		Service: ServiceInfo{
			Name:           "Netflix",
			Domain:         "netflix.com",
			PrimaryColor:   0xFFE50914,
			SecondaryColor: 0xFF000000,
			Category:       catalog.CategoryStreaming,
		},
		LogoURL:            "https://www.google.com/s2/favicons?domain=netflix.com&sz=256",
		Amount:             decimal.RequireFromString("15.99"),
		Currency:           "USD",
		Period:             PeriodMonthly,
		NextPaymentDate:    civil.Date{Year: 2026, Month: time.September, Day: 24},
		CurrentPaymentDate: civil.Date{Year: 2026, Month: time.August, Day: 24},
	}

	entity := toEntity(sub, time.Now())
	if entity.Cost != "$15.99" {
		t.Errorf("cost = %q, want $15.99", entity.Cost)
	}
	if entity.ServiceType != "STREAMING" {
		t.Errorf("serviceType = %q, want STREAMING", entity.ServiceType)
	}

	got := toDomain(entity, "doc-id")
	if diff := cmp.Diff(sub, got, decimalComparer, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDateMillisConversion(t *testing.T) {
	date := civil.Date{Year: 2026, Month: time.May, Day: 24}

	ms := dateToMillis(date)
	// UTC midnight
	if got := time.UnixMilli(ms).UTC(); got.Hour() != 0 || got.Day() != 24 {
		t.Errorf("millis decode = %v", got)
	}
	if got := millisToDate(ms); got != date {
		t.Errorf("round trip = %v, want %v", got, date)
	}
}

func TestDocIDIsDeterministic(t *testing.T) {
	a := testSub("Netflix", "netflix.com", "15.99")
	b := testSub("Netflix", "netflix.com", "99.99")
	if a.DocID() != b.DocID() {
		t.Error("DocID must depend only on service identity")
	}

	c := testSub("Spotify", "spotify.com", "15.99")
	if a.DocID() == c.DocID() {
		t.Error("different services must get different DocIDs")
	}
}

func TestDaysUntilNextPayment(t *testing.T) {
	today := civil.Date{Year: 2026, Month: time.August, Day: 30}

	sub := testSub("Netflix", "netflix.com", "15.99")
	sub.NextPaymentDate = civil.Date{Year: 2026, Month: time.September, Day: 2}
	if got := sub.DaysUntilNextPayment(today); got != 3 {
		t.Errorf("days = %d, want 3", got)
	}

	// Overdue clamps to zero
	sub.NextPaymentDate = civil.Date{Year: 2026, Month: time.August, Day: 1}
	if got := sub.DaysUntilNextPayment(today); got != 0 {
		t.Errorf("days = %d, want 0", got)
	}
}

func TestCycleProgress(t *testing.T) {
	today := civil.Date{Year: 2026, Month: time.August, Day: 30}

	sub := testSub("Netflix", "netflix.com", "15.99")
	sub.Period = PeriodMonthly
	sub.CurrentPaymentDate = civil.Date{Year: 2026, Month: time.August, Day: 15}
	if got := sub.CycleProgress(today); got != 0.5 {
		t.Errorf("progress = %v, want 0.5", got)
	}

	sub.CurrentPaymentDate = civil.Date{Year: 2026, Month: time.January, Day: 1}
	if got := sub.CycleProgress(today); got != 1 {
		t.Errorf("progress = %v, want clamp to 1", got)
	}
}
