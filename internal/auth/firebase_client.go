package auth

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseClient wraps the Firebase services the server uses: Firestore for
// subscription and preference documents, Cloud Messaging for reminder pushes.
type FirebaseClient struct {
	firestoreClient *firestore.Client
	messagingClient *messaging.Client
}

// NewFirebaseClient creates a new Firebase client with Firestore and FCM access.
func NewFirebaseClient(ctx context.Context, projectID, credJSON string) (*FirebaseClient, error) {
	opt := option.WithCredentialsJSON([]byte(credJSON))

	config := &firebase.Config{
		ProjectID: projectID,
	}

	app, err := firebase.NewApp(ctx, config, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Messaging client: %w", err)
	}

	return &FirebaseClient{
		firestoreClient: firestoreClient,
		messagingClient: messagingClient,
	}, nil
}

// Firestore returns the underlying Firestore client.
func (f *FirebaseClient) Firestore() *firestore.Client {
	return f.firestoreClient
}

// Messaging returns the underlying Cloud Messaging client.
func (f *FirebaseClient) Messaging() *messaging.Client {
	return f.messagingClient
}

// Close closes the Firestore client.
func (f *FirebaseClient) Close() error {
	if f.firestoreClient != nil {
		return f.firestoreClient.Close()
	}
	return nil
}
