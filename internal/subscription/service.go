package subscription

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashiroii/tiyin-server/internal/events"
	"github.com/hashiroii/tiyin-server/internal/logger"
)

// remoteStore is the slice of the Firestore store the service touches
// directly. Snapshot syncs go through the Syncer instead.
type remoteStore interface {
	List(ctx context.Context, userID string) ([]Subscription, error)
	Save(ctx context.Context, userID string, sub Subscription) (string, error)
	Delete(ctx context.Context, userID, subscriptionID string) error
}

// Service coordinates the in-memory sessions with the remote mirror. All
// reads and writes go through the session; Firestore only seeds sessions
// and receives async snapshots.
type Service struct {
	sessions  *Manager
	store     remoteStore
	syncer    *Syncer
	publisher *events.Publisher
	logger    *logger.Logger
}

// NewService creates the subscription service.
func NewService(sessions *Manager, store remoteStore, syncer *Syncer, publisher *events.Publisher, logger *logger.Logger) *Service {
	return &Service{
		sessions:  sessions,
		store:     store,
		syncer:    syncer,
		publisher: publisher,
		logger:    logger,
	}
}

// Sessions exposes the session manager for background jobs.
func (s *Service) Sessions() *Manager {
	return s.sessions
}

// ensure returns the user's session, hydrating it from the remote store on
// first access. A failed pull leaves the session empty but usable; local
// state remains the source of truth.
func (s *Service) ensure(ctx context.Context, userID string) *Session {
	session := s.sessions.Session(userID)
	if session.Seeded() {
		return session
	}

	subs, err := s.store.List(ctx, userID)
	if err != nil {
		s.logger.WithContext(ctx).Warn("failed to hydrate session from firestore",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return session
	}

	session.Replace(subs)
	return session
}

// List returns the user's subscriptions in the requested order.
func (s *Service) List(ctx context.Context, userID string, order SortOrder) []Subscription {
	subs := s.ensure(ctx, userID).Snapshot()
	Sort(subs, order)
	return subs
}

// ApplyRecord merges one classified record into the user's list and
// schedules a sync.
func (s *Service) ApplyRecord(ctx context.Context, userID string, sub Subscription, source string) []Subscription {
	session := s.ensure(ctx, userID)
	snapshot := session.Apply(sub)
	s.afterChange(ctx, userID, snapshot, source)
	return snapshot
}

// Create adds a manually entered subscription. The record is written
// through to the remote store inline so the document exists before the next
// snapshot sync; a remote failure is logged and local state stands.
func (s *Service) Create(ctx context.Context, userID string, sub Subscription) Subscription {
	if sub.ID == "" {
		sub.ID = sub.DocID()
	}

	session := s.ensure(ctx, userID)
	snapshot := session.Apply(sub)

	if _, err := s.store.Save(ctx, userID, sub); err != nil {
		s.logger.WithContext(ctx).Warn("failed to save subscription to firestore",
			slog.String("user_id", userID),
			slog.String("subscription_id", sub.ID),
			slog.String("error", err.Error()))
	}

	s.afterChange(ctx, userID, snapshot, "manual")
	return sub
}

// Update overwrites an existing record by ID. A renamed service gets a new
// document identity; since snapshot syncs merge and never remove documents,
// the stale document is deleted inline and the record rekeyed.
func (s *Service) Update(ctx context.Context, userID, id string, sub Subscription) (Subscription, error) {
	session := s.ensure(ctx, userID)
	prev, ok := session.Get(id)
	if !ok {
		return Subscription{}, fmt.Errorf("subscription %s not found", id)
	}

	if sub.DocID() != prev.DocID() {
		sub.ID = sub.DocID()
		if err := s.store.Delete(ctx, userID, id); err != nil {
			s.logger.WithContext(ctx).Error("failed to delete stale subscription document",
				slog.String("user_id", userID),
				slog.String("subscription_id", id),
				slog.String("error", err.Error()))
		}
	}

	snapshot, ok := session.UpdateByID(id, sub)
	if !ok {
		return Subscription{}, fmt.Errorf("subscription %s not found", id)
	}
	s.afterChange(ctx, userID, snapshot, "update")

	if sub.ID == "" {
		sub.ID = id
	}
	return sub, nil
}

// Delete removes a record locally and from the remote store. The remote
// delete is attempted inline because snapshot syncs merge and never remove
// documents; a remote failure is logged, the local removal stands.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	session := s.ensure(ctx, userID)
	removed, ok := session.Remove(id)
	if !ok {
		return fmt.Errorf("subscription %s not found", id)
	}

	if err := s.store.Delete(ctx, userID, removed.ID); err != nil {
		s.logger.WithContext(ctx).Error("failed to delete subscription from firestore",
			slog.String("user_id", userID),
			slog.String("subscription_id", removed.ID),
			slog.String("error", err.Error()))
	}

	s.publishUpdated(userID, session.Len(), "delete")
	return nil
}

// Refresh discards local state and re-pulls the list from the remote store.
func (s *Service) Refresh(ctx context.Context, userID string) ([]Subscription, error) {
	subs, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh subscriptions: %w", err)
	}

	session := s.sessions.Session(userID)
	session.Replace(subs)
	return session.Snapshot(), nil
}

// Summarize aggregates the user's list into its monthly-equivalent total.
func (s *Service) Summarize(ctx context.Context, userID, targetCurrency string) Summary {
	return Summarize(s.ensure(ctx, userID).Snapshot(), targetCurrency)
}

func (s *Service) afterChange(ctx context.Context, userID string, snapshot []Subscription, source string) {
	if err := s.syncer.EnqueueSync(ctx, userID, snapshot); err != nil {
		s.logger.WithContext(ctx).Warn("subscription sync not scheduled",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
	}
	s.publishUpdated(userID, len(snapshot), source)
}

func (s *Service) publishUpdated(userID string, count int, source string) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishSubscriptionsUpdated(events.SubscriptionsUpdated{
		UserID: userID,
		Count:  count,
		Source: source,
	})
}
