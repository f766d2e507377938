package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddToWatchlist records a scheme on a user's watchlist. Adding a
// scheme that is already present is a no-op.
func (s *Store) AddToWatchlist(ctx context.Context, userID string, schemeCode int) error {
	// $addToSet cannot dedup on schemeCode alone because addedAt
	// differs per entry, so guard with a filter excluding users that
	// already hold the code.
	filter := bson.M{"_id": userID, "funds.schemeCode": bson.M{"$ne": schemeCode}}
	update := bson.M{"$push": bson.M{"funds": WatchlistEntry{
		SchemeCode: schemeCode,
		AddedAt:    time.Now(),
	}}}
	_, err := s.db.Collection(colWatchlist).UpdateOne(ctx, filter, update,
		options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// The upsert raced against the user's existing document;
		// the scheme is already listed.
		return nil
	}
	if err != nil {
		return fmt.Errorf("adding %d to watchlist: %w", schemeCode, err)
	}
	return nil
}

// RemoveFromWatchlist drops a scheme from a user's watchlist.
func (s *Store) RemoveFromWatchlist(ctx context.Context, userID string, schemeCode int) error {
	update := bson.M{"$pull": bson.M{"funds": bson.M{"schemeCode": schemeCode}}}
	res, err := s.db.Collection(colWatchlist).UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("removing %d from watchlist: %w", schemeCode, err)
	}
	if res.ModifiedCount == 0 {
		return fmt.Errorf("scheme %d not on watchlist: %w", schemeCode, ErrNotFound)
	}
	return nil
}

// Watchlist returns a user's watched schemes in insertion order. A
// user with no watchlist gets an empty list, not an error.
func (s *Store) Watchlist(ctx context.Context, userID string) ([]WatchlistEntry, error) {
	var doc watchlistDoc
	err := s.db.Collection(colWatchlist).FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching watchlist: %w", err)
	}
	return doc.Funds, nil
}
