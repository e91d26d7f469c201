// Package money handles cost strings as they appear in notification text and
// in stored subscription documents: a currency symbol (or ISO code for
// currencies without a mapped symbol) prefixed to a plain decimal amount.
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// symbolOrder fixes the priority of symbol detection. First match wins.
var symbolOrder = []struct {
	Symbol string
	Code   string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"₸", "KZT"},
	{"₽", "RUB"},
	{"£", "GBP"},
}

// wordOrder fixes the priority of currency-word detection, checked only when
// no symbol matched.
var wordOrder = []struct {
	Word string
	Code string
}{
	{"dollar", "USD"},
	{"euro", "EUR"},
	{"тенге", "KZT"},
	{"рубл", "RUB"}, // stem, matches рубль/рубля/рублей
	{"pound", "GBP"},
}

var nonAmount = regexp.MustCompile(`[^0-9.,]`)

// Symbol returns the display symbol for a currency code. Codes without a
// mapped symbol format as the code itself.
func Symbol(code string) string {
	for _, s := range symbolOrder {
		if s.Code == code {
			return s.Symbol
		}
	}
	return code
}

// DetectCurrency scans text for a currency signal. Symbol match takes
// priority over word match; the fallback is USD.
func DetectCurrency(text string) string {
	for _, s := range symbolOrder {
		if strings.Contains(text, s.Symbol) {
			return s.Code
		}
	}
	lower := strings.ToLower(text)
	for _, w := range wordOrder {
		if strings.Contains(lower, w.Word) {
			return w.Code
		}
	}
	return "USD"
}

// FormatCost renders an amount as a cost string, e.g. "$15.99" or "₸2990".
func FormatCost(amount decimal.Decimal, currency string) string {
	return Symbol(currency) + amount.String()
}

// ParseCost splits a cost string back into amount and currency code.
// Unparseable amounts degrade to zero, unknown currencies to USD.
func ParseCost(cost string) (decimal.Decimal, string) {
	currency := DetectCurrency(cost)

	cleaned := nonAmount.ReplaceAllString(cost, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, currency
	}
	return amount, currency
}
