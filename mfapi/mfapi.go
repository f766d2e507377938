package mfapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/fundlens/fundlens"
)

// ErrSchemeNotFound reports an unknown scheme code.
var ErrSchemeNotFound = errors.New("scheme not found")

// SchemeRef is one row of the scheme universe listing.
type SchemeRef struct {
	SchemeCode          int    `json:"schemeCode"`
	SchemeName          string `json:"schemeName"`
	ISINGrowth          string `json:"isinGrowth"`
	ISINDivReinvestment string `json:"isinDivReinvestment"`
}

// SchemeMeta is the descriptive header of a scheme's NAV payload.
type SchemeMeta struct {
	FundHouse      string `json:"fund_house"`
	SchemeType     string `json:"scheme_type"`
	SchemeCategory string `json:"scheme_category"`
	SchemeCode     int    `json:"scheme_code"`
	SchemeName     string `json:"scheme_name"`
	ISINGrowth     string `json:"isin_growth"`
}

type schemePayload struct {
	Meta   SchemeMeta        `json:"meta"`
	Data   []fundlens.RawNav `json:"data"`
	Status string            `json:"status"`
}

// SchemeList fetches the full scheme universe, tens of thousands of
// rows. The daily disk cache makes repeated calls cheap.
func (c *Client) SchemeList(ctx context.Context) ([]SchemeRef, error) {
	var schemes []SchemeRef
	if err := c.getWithRetry(ctx, c.baseURL+"/mf", &schemes); err != nil {
		return nil, fmt.Errorf("fetching scheme list: %w", err)
	}
	return schemes, nil
}

// ActiveSchemes returns the universe filtered to schemes carrying a
// growth ISIN, the liveness test the original data pipeline applies.
func (c *Client) ActiveSchemes(ctx context.Context) ([]SchemeRef, error) {
	all, err := c.SchemeList(ctx)
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, s := range all {
		if s.ISINGrowth != "" {
			active = append(active, s)
		}
	}
	return active, nil
}

// Scheme fetches a scheme's metadata and full NAV history, rows
// newest-first as the service delivers them.
func (c *Client) Scheme(ctx context.Context, code int) (SchemeMeta, []fundlens.RawNav, error) {
	var payload schemePayload
	if err := c.getWithRetry(ctx, fmt.Sprintf("%s/mf/%d", c.baseURL, code), &payload); err != nil {
		return SchemeMeta{}, nil, fmt.Errorf("fetching scheme %d: %w", code, err)
	}
	if len(payload.Data) == 0 {
		return SchemeMeta{}, nil, fmt.Errorf("scheme %d: %w", code, fundlens.ErrNoData)
	}
	return payload.Meta, payload.Data, nil
}

// NavSeries fetches a scheme's history and builds the engine's series
// in one step.
func (c *Client) NavSeries(ctx context.Context, code int) (fundlens.NavSeries, error) {
	_, raw, err := c.Scheme(ctx, code)
	if err != nil {
		return fundlens.NavSeries{}, err
	}
	return fundlens.BuildNavSeries(raw), nil
}

// getWithRetry wraps jwget in an exponential backoff. A 404 is
// permanent; everything else (transient network trouble, 5xx, rate
// limiting) retries until the elapsed budget runs out.
func (c *Client) getWithRetry(ctx context.Context, addr string, data interface{}) error {
	op := func() (struct{}, error) {
		err := jwget(ctx, c.http, addr, data)
		if errors.Is(err, ErrSchemeNotFound) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}
	_, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(15*time.Second),
	)
	return err
}
