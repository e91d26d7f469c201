package preferences

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection    = "users"
	settingsCollection = "settings"
	preferencesDoc     = "preferences"
)

// Store reads and writes preference documents in Firestore.
type Store struct {
	client *firestore.Client
}

// NewStore creates a preferences store. A nil client disables persistence.
func NewStore(client *firestore.Client) *Store {
	if client == nil {
		return nil
	}
	return &Store{client: client}
}

func (s *Store) doc(userID string) *firestore.DocumentRef {
	return s.client.Collection(usersCollection).Doc(userID).
		Collection(settingsCollection).Doc(preferencesDoc)
}

// Get loads a user's preferences, returning defaults when no document exists.
func (s *Store) Get(ctx context.Context, userID string) (Preferences, error) {
	snapshot, err := s.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Defaults(), nil
		}
		return Defaults(), fmt.Errorf("failed to get preferences: %w", err)
	}

	prefs := Defaults()
	if err := snapshot.DataTo(&prefs); err != nil {
		return Defaults(), fmt.Errorf("failed to decode preferences: %w", err)
	}
	return prefs, nil
}

// Set overwrites a user's preferences document.
func (s *Store) Set(ctx context.Context, userID string, prefs Preferences) error {
	if _, err := s.doc(userID).Set(ctx, prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
