package detect

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hashiroii/tiyin-server/internal/money"
)

// recurringPattern recognizes subscription/billing vocabulary, English and
// Russian. Period adverbs count as billing vocabulary so that bank statements
// like "$15.99 monthly" classify as recurring while one-off alerts like
// "Your balance is $500" do not.
var recurringPattern = regexp.MustCompile(`(?i)(subscription|subscribed|payment|renew|recurring|membership|charged|auto-?pay|monthly|yearly|annual|weekly|daily|quarterly|подписк|платеж|платёж|оплат|продлен|списан|автоплат|ежемесячно|ежегодно|еженедельно|ежедневно|квартал)`)

// amountNearSymbol matches a number adjacent to a currency symbol, in either
// order.
var (
	amountAfterSymbol  = regexp.MustCompile(`[$€₸₽£]\s?(\d+(?:[.,]\d+)?)`)
	amountBeforeSymbol = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s?[$€₸₽£]`)
	// bareAmount is the fallback when no symbol is present: a standalone
	// decimal number that is not part of a date token.
	bareAmount = regexp.MustCompile(`(?:^|[^\d./-])(\d+(?:[.,]\d+)?)(?:[^\d./-]|$)`)
)

// ExtractPaymentData scans notification text for a payment signal: an amount,
// a currency, and whether the charge looks recurring. It returns nil when the
// text carries no signal at all.
func ExtractPaymentData(title, body string) *PaymentData {
	text := strings.TrimSpace(title + " " + body)
	if text == "" {
		return nil
	}

	isRecurring := recurringPattern.MatchString(text)
	amount, hasAmount := extractAmount(text)
	if !isRecurring && !hasAmount {
		return nil
	}

	return &PaymentData{
		Amount:      amount,
		Currency:    money.DetectCurrency(text),
		IsRecurring: isRecurring,
	}
}

// extractAmount finds the numeric amount in text. Amounts adjacent to a
// currency symbol take priority; otherwise the first standalone number wins.
// Absent any signal the amount is zero.
func extractAmount(text string) (decimal.Decimal, bool) {
	for _, re := range []*regexp.Regexp{amountAfterSymbol, amountBeforeSymbol, bareAmount} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", ".")
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		return amount, true
	}
	return decimal.Zero, false
}
