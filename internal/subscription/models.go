// Package subscription holds the subscription domain model, the per-user
// session list, and the Firestore mirror.
package subscription

import (
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hashiroii/tiyin-server/internal/catalog"
)

// Period is the cadence at which a subscription charges.
type Period string

const (
	PeriodMonthly   Period = "MONTHLY"
	PeriodYearly    Period = "YEARLY"
	PeriodWeekly    Period = "WEEKLY"
	PeriodDaily     Period = "DAILY"
	PeriodQuarterly Period = "QUARTERLY"
)

// ParsePeriod parses a stored period name. Unknown values default to monthly.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodMonthly, PeriodYearly, PeriodWeekly, PeriodDaily, PeriodQuarterly:
		return Period(s)
	default:
		return PeriodMonthly
	}
}

// Days returns the nominal length of one billing cycle in days.
func (p Period) Days() int {
	switch p {
	case PeriodYearly:
		return 365
	case PeriodWeekly:
		return 7
	case PeriodDaily:
		return 1
	case PeriodQuarterly:
		return 90
	default:
		return 30
	}
}

// MonthlyFactor converts one charge at this period into a monthly-equivalent
// amount.
func (p Period) MonthlyFactor() decimal.Decimal {
	switch p {
	case PeriodYearly:
		return decimal.NewFromInt(1).Div(decimal.NewFromInt(12))
	case PeriodQuarterly:
		return decimal.NewFromInt(1).Div(decimal.NewFromInt(3))
	case PeriodWeekly:
		return decimal.NewFromInt(52).Div(decimal.NewFromInt(12))
	case PeriodDaily:
		return decimal.NewFromInt(30)
	default:
		return decimal.NewFromInt(1)
	}
}

// ServiceInfo is the brand metadata attached to a subscription.
type ServiceInfo struct {
	Name           string           `json:"name"`
	Domain         string           `json:"domain"`
	PrimaryColor   int64            `json:"primary_color"`
	SecondaryColor int64            `json:"secondary_color"`
	Category       catalog.Category `json:"category"`
}

// Subscription is the durable record of one detected or user-entered
// recurring payment.
type Subscription struct {
	ID                 string          `json:"id,omitempty"`
	Service            ServiceInfo     `json:"service"`
	LogoURL            string          `json:"logo_url,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	Period             Period          `json:"period"`
	NextPaymentDate    civil.Date      `json:"next_payment_date"`
	CurrentPaymentDate civil.Date      `json:"current_payment_date"`
}

// DocID derives the deterministic Firestore document ID for this
// subscription. Identity is (service domain, service name), so re-detecting
// the same service updates the existing document instead of duplicating it.
func (s Subscription) DocID() string {
	return uuid.NewMD5(uuid.NameSpaceURL, []byte(s.Service.Domain+"-"+s.Service.Name)).String()
}

// DaysUntilNextPayment returns whole days from today to the next charge,
// clamped at zero for overdue records.
func (s Subscription) DaysUntilNextPayment(today civil.Date) int {
	days := today.DaysSince(s.NextPaymentDate) * -1
	if days < 0 {
		return 0
	}
	return days
}

// CycleProgress reports how far through the current billing cycle the
// subscription is, in [0, 1].
func (s Subscription) CycleProgress(today civil.Date) float64 {
	total := s.Period.Days()
	passed := today.DaysSince(s.CurrentPaymentDate)
	progress := float64(passed) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
