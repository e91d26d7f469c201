package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/hashiroii/tiyin-server/internal/logger"
)

// SubscriptionsUpdated is published after a user's subscription list changes.
type SubscriptionsUpdated struct {
	UserID    string    `json:"userId"`
	Count     int       `json:"count"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits domain events over NATS. A nil connection disables
// publishing, so every call site can publish unconditionally.
type Publisher struct {
	conn   *nats.Conn
	logger *logger.Logger
}

// NewPublisher connects to NATS. An empty URL returns a disabled publisher.
func NewPublisher(natsURL string, logger *logger.Logger) (*Publisher, error) {
	if natsURL == "" {
		logger.Info("nats url not configured, event publishing disabled")
		return &Publisher{logger: logger}, nil
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("tiyin-server"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	logger.Info("connected to nats", slog.String("url", natsURL))
	return &Publisher{conn: conn, logger: logger}, nil
}

// PublishSubscriptionsUpdated emits the updated event for a user. Failures
// are logged and swallowed; events are best effort.
func (p *Publisher) PublishSubscriptionsUpdated(event SubscriptionsUpdated) {
	if p.conn == nil {
		return
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal subscriptions updated event",
			slog.String("user_id", event.UserID),
			slog.String("error", err.Error()))
		return
	}

	subject := fmt.Sprintf("tiyin.subscriptions.updated.%s", event.UserID)
	if err := p.conn.Publish(subject, payload); err != nil {
		p.logger.Error("failed to publish subscriptions updated event",
			slog.String("subject", subject),
			slog.String("error", err.Error()))
	}
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("failed to drain nats connection", slog.String("error", err.Error()))
	}
}
