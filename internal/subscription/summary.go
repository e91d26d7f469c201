package subscription

import (
	"sort"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/hashiroii/tiyin-server/internal/money"
)

// SortOrder selects how a subscription list is presented.
type SortOrder string

const (
	SortByExpiryDate SortOrder = "EXPIRY_DATE"
	SortByCost       SortOrder = "COST"
	SortByAlphabet   SortOrder = "ALPHABET"
)

// ParseSortOrder maps a raw value to a sort order, defaulting to expiry date.
func ParseSortOrder(raw string) SortOrder {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(SortByCost):
		return SortByCost
	case string(SortByAlphabet):
		return SortByAlphabet
	default:
		return SortByExpiryDate
	}
}

// usdRates holds units of each currency per one US dollar. Static table, good
// enough for an at-a-glance total; live FX is out of scope.
var usdRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"EUR": decimal.RequireFromString("0.92"),
	"KZT": decimal.RequireFromString("450"),
	"RUB": decimal.RequireFromString("90"),
	"GBP": decimal.RequireFromString("0.79"),
}

// Convert re-denominates an amount between two known currencies. Unknown
// currencies pass through unconverted.
func Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to {
		return amount
	}
	fromRate, okFrom := usdRates[from]
	toRate, okTo := usdRates[to]
	if !okFrom || !okTo || fromRate.IsZero() {
		return amount
	}
	return amount.Div(fromRate).Mul(toRate)
}

// Summary is the aggregate view of one user's subscription list.
type Summary struct {
	ActiveCount      int             `json:"activeCount"`
	TotalMonthlyCost decimal.Decimal `json:"totalMonthlyCost"`
	Currency         string          `json:"currency"`
	FormattedTotal   string          `json:"formattedTotal"`
	NextPaymentDate  *civil.Date     `json:"nextPaymentDate,omitempty"`
	NextPaymentName  string          `json:"nextPaymentName,omitempty"`
}

// Summarize normalizes every subscription to its monthly equivalent in the
// target currency and reports the soonest upcoming payment.
func Summarize(subs []Subscription, targetCurrency string) Summary {
	if targetCurrency == "" {
		targetCurrency = "KZT"
	}

	total := decimal.Zero
	summary := Summary{
		ActiveCount: len(subs),
		Currency:    targetCurrency,
	}

	for _, sub := range subs {
		monthly := sub.Amount.Mul(sub.Period.MonthlyFactor())
		total = total.Add(Convert(monthly, sub.Currency, targetCurrency))

		if summary.NextPaymentDate == nil || sub.NextPaymentDate.Before(*summary.NextPaymentDate) {
			next := sub.NextPaymentDate
			summary.NextPaymentDate = &next
			summary.NextPaymentName = sub.Service.Name
		}
	}

	summary.TotalMonthlyCost = total.Round(2)
	summary.FormattedTotal = money.FormatCost(summary.TotalMonthlyCost, targetCurrency)
	return summary
}

// Sort orders a subscription list in place.
func Sort(subs []Subscription, order SortOrder) {
	switch order {
	case SortByCost:
		// Most expensive first, normalized to monthly USD so periods compare
		sort.SliceStable(subs, func(i, j int) bool {
			a := Convert(subs[i].Amount.Mul(subs[i].Period.MonthlyFactor()), subs[i].Currency, "USD")
			b := Convert(subs[j].Amount.Mul(subs[j].Period.MonthlyFactor()), subs[j].Currency, "USD")
			return a.GreaterThan(b)
		})
	case SortByAlphabet:
		sort.SliceStable(subs, func(i, j int) bool {
			return strings.ToLower(subs[i].Service.Name) < strings.ToLower(subs[j].Service.Name)
		})
	default:
		// Soonest renewal first
		sort.SliceStable(subs, func(i, j int) bool {
			return subs[i].NextPaymentDate.Before(subs[j].NextPaymentDate)
		})
	}
}
