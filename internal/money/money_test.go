package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDetectCurrency(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"$15.99", "USD"},
		{"4,99 €", "EUR"},
		{"₸2990", "KZT"},
		{"₽300", "RUB"},
		{"£7.99", "GBP"},
		{"costs five dollars", "USD"},
		{"5000 тенге в месяц", "KZT"},
		{"300 рублей", "RUB"},
		{"no currency at all", "USD"},
		// Symbol wins over word
		{"₸2990, roughly 6 dollars", "KZT"},
	}

	for _, tt := range tests {
		if got := DetectCurrency(tt.text); got != tt.want {
			t.Errorf("DetectCurrency(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"15.99", "USD", "$15.99"},
		{"2990", "KZT", "₸2990"},
		{"4.99", "EUR", "€4.99"},
		// Unmapped codes fall back to the code itself
		{"12.50", "CHF", "CHF12.5"},
	}

	for _, tt := range tests {
		got := FormatCost(decimal.RequireFromString(tt.amount), tt.currency)
		if got != tt.want {
			t.Errorf("FormatCost(%s, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestParseCost(t *testing.T) {
	tests := []struct {
		cost         string
		wantAmount   string
		wantCurrency string
	}{
		{"$15.99", "15.99", "USD"},
		{"₸2990", "2990", "KZT"},
		{"€4,99", "4.99", "EUR"},
		{"garbage", "0", "USD"},
		{"", "0", "USD"},
	}

	for _, tt := range tests {
		amount, currency := ParseCost(tt.cost)
		if !amount.Equal(decimal.RequireFromString(tt.wantAmount)) {
			t.Errorf("ParseCost(%q) amount = %s, want %s", tt.cost, amount, tt.wantAmount)
		}
		if currency != tt.wantCurrency {
			t.Errorf("ParseCost(%q) currency = %q, want %q", tt.cost, currency, tt.wantCurrency)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, currency := range []string{"USD", "EUR", "KZT", "RUB", "GBP"} {
		amount := decimal.RequireFromString("15.99")
		parsed, parsedCurrency := ParseCost(FormatCost(amount, currency))
		if !parsed.Equal(amount) || parsedCurrency != currency {
			t.Errorf("round trip %s 15.99 -> %s %s", currency, parsedCurrency, parsed)
		}
	}
}
