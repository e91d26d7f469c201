// Package detect implements the notification classifier: a single-pass
// heuristic that turns a device notification into a subscription record, or
// nothing.
package detect

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Event is one device notification as forwarded by the client. Title and body
// may be empty; malformed input is treated as signal absent, never as an
// error.
type Event struct {
	Package  string    `json:"package"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	AppName  string    `json:"app_name,omitempty"`
	PostedAt time.Time `json:"posted_at"`
}

// combined returns the title and body joined for text matching.
func (e Event) combined() string {
	return e.Title + " " + e.Body
}

// PaymentData is the transient result of payment extraction over one
// notification. It is created and discarded within a single classification.
type PaymentData struct {
	Amount      decimal.Decimal
	Currency    string
	IsRecurring bool
}

// AppNameResolver resolves a human-readable application name for a package
// identifier. Used only as the last-resort fallback in service recognition.
type AppNameResolver interface {
	AppName(pkg string) (string, error)
}

// FallbackAppName derives a name from the package identifier itself: the
// trailing segment after the last dot.
func FallbackAppName(pkg string) string {
	if idx := strings.LastIndex(pkg, "."); idx >= 0 && idx < len(pkg)-1 {
		return pkg[idx+1:]
	}
	return pkg
}
