package subscription

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Store mirrors subscription records to Firestore at
// users/{uid}/subscriptions/{id}.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore-backed subscription store. Returns nil for a
// nil client so callers can treat the remote mirror as absent.
func NewStore(client *firestore.Client) *Store {
	if client == nil {
		return nil
	}
	return &Store{client: client}
}

func (s *Store) collection(userID string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(userID).Collection("subscriptions")
}

// List fetches all subscription documents for a user. Documents that fail to
// decode are skipped rather than failing the whole read.
func (s *Store) List(ctx context.Context, userID string) ([]Subscription, error) {
	if s == nil || s.client == nil {
		return nil, status.Error(codes.Internal, "firestore client is nil")
	}
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "userID must be non-empty")
	}

	docs, err := s.collection(userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to list subscriptions for user %s: %v", userID, err)
	}

	subs := make([]Subscription, 0, len(docs))
	for _, doc := range docs {
		var entity firestoreEntity
		if err := doc.DataTo(&entity); err != nil {
			continue
		}
		subs = append(subs, toDomain(entity, doc.Ref.ID))
	}
	return subs, nil
}

// Save writes one subscription document. The document ID is the record's
// deterministic identity so repeated saves update in place.
func (s *Store) Save(ctx context.Context, userID string, sub Subscription) (string, error) {
	if s == nil || s.client == nil {
		return "", status.Error(codes.Internal, "firestore client is nil")
	}
	if userID == "" || sub.Service.Name == "" {
		return "", status.Error(codes.InvalidArgument, "userID and service name must be non-empty")
	}

	docID := sub.ID
	if docID == "" {
		docID = sub.DocID()
	}

	entity := toEntity(sub, time.Now())
	if _, err := s.collection(userID).Doc(docID).Set(ctx, entity); err != nil {
		return "", status.Errorf(codes.Internal, "failed to save subscription user=%s id=%s: %v", userID, docID, err)
	}
	return docID, nil
}

// Delete removes one subscription document. Deleting a missing document is
// not an error.
func (s *Store) Delete(ctx context.Context, userID, subscriptionID string) error {
	if s == nil || s.client == nil {
		return status.Error(codes.Internal, "firestore client is nil")
	}
	if userID == "" || subscriptionID == "" {
		return status.Error(codes.InvalidArgument, "userID and subscriptionID must be non-empty")
	}

	if _, err := s.collection(userID).Doc(subscriptionID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return status.Errorf(codes.Internal, "failed to delete subscription user=%s id=%s: %v", userID, subscriptionID, err)
	}
	return nil
}

// Sync mirrors the full subscription list in one bulk write. Each record gets
// a set-with-merge at its deterministic document ID, so re-detections update
// rather than duplicate.
func (s *Store) Sync(ctx context.Context, userID string, subs []Subscription) error {
	if s == nil || s.client == nil {
		return status.Error(codes.Internal, "firestore client is nil")
	}
	if userID == "" {
		return status.Error(codes.InvalidArgument, "userID must be non-empty")
	}
	if len(subs) == 0 {
		return nil
	}

	now := time.Now()
	bw := s.client.BulkWriter(ctx)

	jobs := make([]*firestore.BulkWriterJob, 0, len(subs))
	for _, sub := range subs {
		docRef := s.collection(userID).Doc(sub.DocID())
		job, err := bw.Set(docRef, toEntity(sub, now), firestore.MergeAll)
		if err != nil {
			bw.End()
			return status.Errorf(codes.Internal, "failed to enqueue sync write user=%s: %v", userID, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	var failed int
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("sync completed with %d of %d failed writes for user %s", failed, len(subs), userID)
	}
	return nil
}
