package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundlens/fundlens"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound reports a lookup for a document that does not exist.
var ErrNotFound = errors.New("not found")

// CreatePortfolio inserts a new portfolio and fills in its generated
// ID.
func (s *Store) CreatePortfolio(ctx context.Context, p *fundlens.Portfolio) error {
	doc, err := toPortfolioDoc(p)
	if err != nil {
		return fmt.Errorf("encoding portfolio: %w", err)
	}
	res, err := s.db.Collection(colPortfolios).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("inserting portfolio: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// Portfolio fetches one portfolio by ID.
func (s *Store) Portfolio(ctx context.Context, id string) (*fundlens.Portfolio, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("portfolio %q: %w", id, ErrNotFound)
	}
	var doc portfolioDoc
	err = s.db.Collection(colPortfolios).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("portfolio %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching portfolio %q: %w", id, err)
	}
	return doc.toDomain(), nil
}

// Portfolios lists a user's portfolios.
func (s *Store) Portfolios(ctx context.Context, userID string) ([]*fundlens.Portfolio, error) {
	cur, err := s.db.Collection(colPortfolios).Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}
	defer cur.Close(ctx)

	var out []*fundlens.Portfolio
	for cur.Next(ctx) {
		var doc portfolioDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding portfolio: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// SavePortfolio replaces a stored portfolio with its updated state,
// typically after a Buy, Sell, or SIP debit.
func (s *Store) SavePortfolio(ctx context.Context, p *fundlens.Portfolio) error {
	doc, err := toPortfolioDoc(p)
	if err != nil {
		return fmt.Errorf("encoding portfolio: %w", err)
	}
	res, err := s.db.Collection(colPortfolios).ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return fmt.Errorf("saving portfolio %q: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("portfolio %q: %w", p.ID, ErrNotFound)
	}
	return nil
}

// DeletePortfolio removes a portfolio and cancels its SIP plans.
func (s *Store) DeletePortfolio(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("portfolio %q: %w", id, ErrNotFound)
	}
	res, err := s.db.Collection(colPortfolios).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("deleting portfolio %q: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("portfolio %q: %w", id, ErrNotFound)
	}
	_, err = s.db.Collection(colSIPs).UpdateMany(ctx,
		bson.M{"portfolioId": oid},
		bson.M{"$set": bson.M{"status": SIPCancelled}})
	if err != nil {
		return fmt.Errorf("cancelling SIPs of portfolio %q: %w", id, err)
	}
	return nil
}
