package history

import "time"

// Outcomes recorded for each processed notification event.
const (
	OutcomeClassified = "classified"
	OutcomeBank       = "ignored_bank"
	OutcomeDisabled   = "notifications_disabled"
)

// Detection is one classification decision for one notification event.
type Detection struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"-"`
	Package     string    `json:"package"`
	AppName     string    `json:"appName,omitempty"`
	Outcome     string    `json:"outcome"`
	ServiceName string    `json:"serviceName,omitempty"`
	Amount      string    `json:"amount,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	Period      string    `json:"period,omitempty"`
	PostedAt    time.Time `json:"postedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}
