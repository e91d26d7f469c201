package history

import (
	"context"
	"log/slog"

	"github.com/hashiroii/tiyin-server/internal/logger"
)

// Service records detections without blocking the ingest path. Recording is
// best effort; a failed insert only loses one history row.
type Service struct {
	store  *Store
	logger *logger.Logger
}

// NewService creates the history service. A nil store disables recording.
func NewService(store *Store, logger *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Record persists one detection, logging failures.
func (s *Service) Record(ctx context.Context, d Detection) {
	if s.store == nil {
		return
	}

	if err := s.store.Record(ctx, d); err != nil {
		s.logger.WithContext(ctx).Warn("failed to record detection",
			slog.String("user_id", d.UserID),
			slog.String("outcome", d.Outcome),
			slog.String("error", err.Error()))
	}
}

// List returns the user's most recent detections.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]Detection, error) {
	if s.store == nil {
		return []Detection{}, nil
	}
	return s.store.ListByUser(ctx, userID, limit)
}
