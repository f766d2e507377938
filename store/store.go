// Package store persists portfolios, SIP plans, watchlists, and the
// cached scheme universe in MongoDB.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names, carried over from the original deployment so an
// existing database keeps working.
const (
	colPortfolios = "virtual_portfolio"
	colSIPs       = "sip_investments"
	colWatchlist  = "watchlist"
	colSchemes    = "active_schemes"
)

// Store wraps a MongoDB database. It holds an injected client with an
// explicit lifecycle; nothing here is a package-level singleton, so
// tests and multi-tenant embedders can run several stores side by
// side.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to MongoDB and verifies the connection with a ping.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// NewWithClient wraps an already-connected client, for tests and
// embedders that manage the connection themselves.
func NewWithClient(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, db: client.Database(dbName)}
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
