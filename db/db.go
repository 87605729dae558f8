package db

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

const (
	reportsCollection  = "reports"
	requestsCollection = "resourceRequests"
	offersCollection   = "aidOffers"
	clustersCollection = "clusters"
)

// FirestoreClient is a singleton Firestore client instance.
var (
	client     *firestore.Client
	clientOnce sync.Once
)

// InitFirestore initializes and returns a Firestore client.
func InitFirestore() (*firestore.Client, error) {
	var initErr error

	clientOnce.Do(func() {
		// Decode credentials
		encodedCreds := os.Getenv("FIREBASE_CREDENTIALS")
		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			initErr = fmt.Errorf("failed to decode Firestore credentials: %w", err)
			return
		}

		// Initialize Firebase App
		opt := option.WithCredentialsJSON(creds)
		app, err := firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			initErr = fmt.Errorf("error initializing Firebase app: %w", err)
			return
		}

		// Get Firestore Client
		client, err = app.Firestore(context.Background())
		if err != nil {
			initErr = fmt.Errorf("error getting Firestore client: %w", err)
		}
	})

	return client, initErr
}

// CloseFirestore closes the Firestore client.
func CloseFirestore() {
	if client != nil {
		client.Close()
	}
}
