package store

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// schemeBatchSize bounds a single InsertMany during a cache rebuild.
const schemeBatchSize = 100

// ReplaceActiveSchemes rebuilds the scheme cache: the old universe is
// dropped, then rows are inserted in batches. Callers run this from
// the nightly refresh, never from a request path.
func (s *Store) ReplaceActiveSchemes(ctx context.Context, schemes []Scheme) error {
	col := s.db.Collection(colSchemes)
	if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clearing scheme cache: %w", err)
	}
	for start := 0; start < len(schemes); start += schemeBatchSize {
		end := start + schemeBatchSize
		if end > len(schemes) {
			end = len(schemes)
		}
		batch := make([]interface{}, 0, end-start)
		for _, sc := range schemes[start:end] {
			batch = append(batch, sc)
		}
		if _, err := col.InsertMany(ctx, batch); err != nil {
			return fmt.Errorf("inserting scheme batch at %d: %w", start, err)
		}
	}
	return nil
}

// SearchSchemes matches cached schemes by name substring
// (case-insensitive) or exact scheme code.
func (s *Store) SearchSchemes(ctx context.Context, query string, limit int64) ([]Scheme, error) {
	filter := bson.M{"name": bson.M{
		"$regex":   regexp.QuoteMeta(query),
		"$options": "i",
	}}
	if code, err := strconv.Atoi(query); err == nil {
		filter = bson.M{"$or": bson.A{filter, bson.M{"id": code}}}
	}
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "name", Value: 1}})
	return s.findSchemes(ctx, filter, opts)
}

// ActiveSchemes lists the whole cached universe.
func (s *Store) ActiveSchemes(ctx context.Context) ([]Scheme, error) {
	return s.findSchemes(ctx, bson.M{}, options.Find())
}

// SchemeNavs returns the cached latest NAV for each requested code.
// Codes missing from the cache are simply absent from the map.
func (s *Store) SchemeNavs(ctx context.Context, codes []int) (map[int]float64, error) {
	if len(codes) == 0 {
		return map[int]float64{}, nil
	}
	schemes, err := s.findSchemes(ctx, bson.M{"id": bson.M{"$in": codes}}, options.Find())
	if err != nil {
		return nil, err
	}
	navs := make(map[int]float64, len(schemes))
	for _, sc := range schemes {
		navs[sc.Code] = sc.Nav
	}
	return navs, nil
}

func (s *Store) findSchemes(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Scheme, error) {
	cur, err := s.db.Collection(colSchemes).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing schemes: %w", err)
	}
	defer cur.Close(ctx)

	var out []Scheme
	for cur.Next(ctx) {
		var sc Scheme
		if err := cur.Decode(&sc); err != nil {
			return nil, fmt.Errorf("decoding scheme: %w", err)
		}
		out = append(out, sc)
	}
	return out, cur.Err()
}
