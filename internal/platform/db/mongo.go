package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names for the three document stores the tracker uses.
const (
	PatientsCollection = "patients"
	VisitsCollection   = "visits"
	UsersCollection    = "users"
)

// Connect establishes the Mongo client and verifies the deployment is
// reachable within the configured timeout. A ping failure is returned to the
// caller rather than closing the client: the driver retries per operation, so
// the server can start with an unreachable store and serve requests that fail
// individually.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return client, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// ClientPinger adapts a *mongo.Client to the Pinger interface used by the
// health handler.
func ClientPinger(client *mongo.Client) Pinger {
	return PingerFunc(func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})
}

