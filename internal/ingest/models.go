package ingest

import (
	"time"

	"github.com/hashiroii/tiyin-server/internal/detect"
)

// NotificationRequest is one device notification posted for classification.
type NotificationRequest struct {
	Package  string    `json:"package" binding:"required"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	AppName  string    `json:"appName"`
	PostedAt time.Time `json:"postedAt"`
}

func (r *NotificationRequest) toEvent() detect.Event {
	postedAt := r.PostedAt
	if postedAt.IsZero() {
		postedAt = time.Now().UTC()
	}
	return detect.Event{
		Package:  r.Package,
		Title:    r.Title,
		Body:     r.Body,
		AppName:  r.AppName,
		PostedAt: postedAt,
	}
}

// Result reports what one notification event produced.
type Result struct {
	Outcome      string `json:"outcome"`
	Subscription any    `json:"subscription,omitempty"`
}
