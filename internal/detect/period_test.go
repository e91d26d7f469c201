package detect

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/hashiroii/tiyin-server/internal/subscription"
)

func TestDetectPeriod(t *testing.T) {
	tests := []struct {
		text string
		want subscription.Period
	}{
		{"billed monthly", subscription.PeriodMonthly},
		{"annual plan renewed", subscription.PeriodYearly},
		{"weekly digest subscription", subscription.PeriodWeekly},
		{"daily pass", subscription.PeriodDaily},
		{"quarterly invoice", subscription.PeriodQuarterly},
		{"ежегодная подписка продлена ежегодно", subscription.PeriodYearly},
		{"оплата за месяц", subscription.PeriodMonthly},
		{"no period mentioned", subscription.PeriodMonthly},
	}

	for _, tt := range tests {
		if got := DetectPeriod(tt.text, ""); got != tt.want {
			t.Errorf("DetectPeriod(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		text   string
		want   civil.Date
		wantOK bool
	}{
		{"renews on 24.5.2026", civil.Date{Year: 2026, Month: time.May, Day: 24}, true},
		{"renews on 24/05/26", civil.Date{Year: 2026, Month: time.May, Day: 24}, true},
		{"renews on 1-12-2027", civil.Date{Year: 2027, Month: time.December, Day: 1}, true},
		{"no date here", civil.Date{}, false},
		{"bad date 32.13.2026", civil.Date{}, false},
	}

	for _, tt := range tests {
		got, ok := ExtractDate(tt.text)
		if ok != tt.wantOK {
			t.Errorf("ExtractDate(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ExtractDate(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
