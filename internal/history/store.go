package history

import (
	"context"
	"database/sql"
	"fmt"
)

// Store persists classification decisions in Postgres.
type Store struct {
	db *sql.DB
}

// NewStore creates a history store. A nil handle disables recording.
func NewStore(db *sql.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

// Record inserts one detection row.
func (s *Store) Record(ctx context.Context, d Detection) error {
	const query = `
		INSERT INTO detections (user_id, package, app_name, outcome, service_name, amount, currency, period, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		d.UserID, d.Package, d.AppName, d.Outcome,
		d.ServiceName, d.Amount, d.Currency, d.Period, d.PostedAt)
	if err != nil {
		return fmt.Errorf("failed to insert detection: %w", err)
	}
	return nil
}

// ListByUser returns the user's most recent detections, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string, limit int) ([]Detection, error) {
	const query = `
		SELECT id, user_id, package, app_name, outcome, service_name, amount, currency, period, posted_at, created_at
		FROM detections
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer rows.Close()

	var detections []Detection
	for rows.Next() {
		var d Detection
		if err := rows.Scan(&d.ID, &d.UserID, &d.Package, &d.AppName, &d.Outcome,
			&d.ServiceName, &d.Amount, &d.Currency, &d.Period, &d.PostedAt, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}
		detections = append(detections, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read detections: %w", err)
	}

	return detections, nil
}
