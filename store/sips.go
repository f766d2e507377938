package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fundlens/fundlens"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MinSIPAmount is the smallest monthly installment a plan may carry.
const MinSIPAmount = 500

// NextDebitDate returns the next occurrence of dayOfMonth strictly
// after from: later this month if the day has not passed yet,
// otherwise the same day next month. Days are capped at 28 so every
// month has the date.
func NextDebitDate(from time.Time, dayOfMonth int) time.Time {
	next := time.Date(from.Year(), from.Month(), dayOfMonth, 0, 0, 0, 0, from.Location())
	if !next.After(from) {
		next = next.AddDate(0, 1, 0)
	}
	return next
}

// CreateSIP validates and registers a new plan. The next debit date
// is derived from dayOfMonth; the first installment is collected by
// the debit run, not at creation time.
func (s *Store) CreateSIP(ctx context.Context, sip *SIP) error {
	if sip.Amount < MinSIPAmount {
		return fmt.Errorf("%w: minimum SIP amount is ₹%d", fundlens.ErrInvalidRequest, MinSIPAmount)
	}
	if sip.DayOfMonth < 1 || sip.DayOfMonth > 28 {
		return fmt.Errorf("%w: debit day must be between 1 and 28", fundlens.ErrInvalidRequest)
	}
	pid, err := primitive.ObjectIDFromHex(sip.PortfolioID)
	if err != nil {
		return fmt.Errorf("portfolio %q: %w", sip.PortfolioID, ErrNotFound)
	}

	now := time.Now()
	sip.Status = SIPActive
	sip.NextDebitDate = NextDebitDate(now, sip.DayOfMonth)
	sip.CreatedAt = now
	sip.UpdatedAt = now

	doc := sipDoc{PortfolioID: pid, SIP: *sip}
	res, err := s.db.Collection(colSIPs).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("inserting SIP: %w", err)
	}
	sip.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// SIPs lists a portfolio's plans that have not been cancelled,
// ordered by upcoming debit date.
func (s *Store) SIPs(ctx context.Context, portfolioID string) ([]*SIP, error) {
	pid, err := primitive.ObjectIDFromHex(portfolioID)
	if err != nil {
		return nil, fmt.Errorf("portfolio %q: %w", portfolioID, ErrNotFound)
	}
	filter := bson.M{"portfolioId": pid, "status": bson.M{"$ne": SIPCancelled}}
	opts := options.Find().SetSort(bson.D{{Key: "nextDebitDate", Value: 1}})
	return s.findSIPs(ctx, filter, opts)
}

// DueSIPs returns every active plan whose debit date has arrived.
func (s *Store) DueSIPs(ctx context.Context, today time.Time) ([]*SIP, error) {
	filter := bson.M{"status": SIPActive, "nextDebitDate": bson.M{"$lte": today}}
	return s.findSIPs(ctx, filter, options.Find())
}

func (s *Store) findSIPs(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*SIP, error) {
	cur, err := s.db.Collection(colSIPs).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing SIPs: %w", err)
	}
	defer cur.Close(ctx)

	var out []*SIP
	for cur.Next(ctx) {
		var doc sipDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding SIP: %w", err)
		}
		sip := doc.SIP
		sip.ID = doc.ID.Hex()
		sip.PortfolioID = doc.PortfolioID.Hex()
		out = append(out, &sip)
	}
	return out, cur.Err()
}

// RecordDebit marks one installment as collected: accumulates units
// and invested amount, and pushes the next debit a month out.
func (s *Store) RecordDebit(ctx context.Context, sipID string, units, amount float64, debited time.Time) error {
	oid, err := primitive.ObjectIDFromHex(sipID)
	if err != nil {
		return fmt.Errorf("SIP %q: %w", sipID, ErrNotFound)
	}
	var doc sipDoc
	err = s.db.Collection(colSIPs).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("SIP %q: %w", sipID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("fetching SIP %q: %w", sipID, err)
	}
	update := bson.M{
		"$inc": bson.M{"unitsAllotted": units, "totalInvested": amount},
		"$set": bson.M{
			"lastDebitDate": debited,
			"nextDebitDate": doc.NextDebitDate.AddDate(0, 1, 0),
			"updatedAt":     time.Now(),
		},
	}
	_, err = s.db.Collection(colSIPs).UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("recording debit for SIP %q: %w", sipID, err)
	}
	return nil
}

// CancelSIP deactivates a plan. Its accumulated units stay in the
// portfolio.
func (s *Store) CancelSIP(ctx context.Context, sipID string) error {
	oid, err := primitive.ObjectIDFromHex(sipID)
	if err != nil {
		return fmt.Errorf("SIP %q: %w", sipID, ErrNotFound)
	}
	res, err := s.db.Collection(colSIPs).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": SIPCancelled, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("cancelling SIP %q: %w", sipID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("SIP %q: %w", sipID, ErrNotFound)
	}
	return nil
}
