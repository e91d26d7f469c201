package preferences

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hashiroii/tiyin-server/internal/logger"
)

// Service caches preferences in memory so the ingest path can check them on
// every event without a Firestore read. The cache holds whatever was last
// read or written; a missing store leaves users on defaults.
type Service struct {
	store  *Store
	logger *logger.Logger

	mu    sync.RWMutex
	cache map[string]Preferences
}

// NewService creates the preferences service.
func NewService(store *Store, logger *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		cache:  make(map[string]Preferences),
	}
}

// Get returns a user's preferences, loading them from Firestore on first
// access. Lookup failures fall back to defaults.
func (s *Service) Get(ctx context.Context, userID string) Preferences {
	s.mu.RLock()
	prefs, ok := s.cache[userID]
	s.mu.RUnlock()
	if ok {
		return prefs
	}

	prefs = Defaults()
	if s.store != nil {
		loaded, err := s.store.Get(ctx, userID)
		if err != nil {
			s.logger.WithContext(ctx).Warn("failed to load preferences, using defaults",
				slog.String("user_id", userID),
				slog.String("error", err.Error()))
		} else {
			prefs = loaded
		}
	}

	s.mu.Lock()
	s.cache[userID] = prefs
	s.mu.Unlock()
	return prefs
}

// Patch applies a partial update and persists the result.
func (s *Service) Patch(ctx context.Context, userID string, patch PatchRequest) (Preferences, error) {
	prefs := s.Get(ctx, userID)
	patch.applyTo(&prefs)

	if s.store != nil {
		if err := s.store.Set(ctx, userID, prefs); err != nil {
			return prefs, err
		}
	}

	s.mu.Lock()
	s.cache[userID] = prefs
	s.mu.Unlock()
	return prefs, nil
}
