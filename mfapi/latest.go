package mfapi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/fundlens/fundlens"
	"github.com/fundlens/fundlens/date"
)

// LatestNav probes a scheme's most recent NAV without decoding the
// whole multi-year payload into typed rows: the service returns data
// newest-first, so the first entry is the latest quote.
func (c *Client) LatestNav(ctx context.Context, code int) (fundlens.NavPoint, error) {
	var jobj any
	if err := jwget(ctx, c.http, fmt.Sprintf("%s/mf/%d", c.baseURL, code), &jobj); err != nil {
		return fundlens.NavPoint{}, fmt.Errorf("fetching latest NAV for %d: %w", code, err)
	}

	nav, err := pathString(jobj, "$.data[0].nav")
	if err != nil {
		return fundlens.NavPoint{}, fmt.Errorf("scheme %d: %w", code, err)
	}
	day, err := pathString(jobj, "$.data[0].date")
	if err != nil {
		return fundlens.NavPoint{}, fmt.Errorf("scheme %d: %w", code, err)
	}

	value, err := strconv.ParseFloat(nav, 64)
	if err != nil || value <= 0 {
		return fundlens.NavPoint{}, fmt.Errorf("scheme %d: %w: nav %q", code, fundlens.ErrNoValidNav, nav)
	}
	when, err := date.ParseDMY(day)
	if err != nil {
		return fundlens.NavPoint{}, fmt.Errorf("scheme %d: bad nav date %q: %w", code, day, err)
	}
	return fundlens.NavPoint{Date: when, Nav: value}, nil
}

// pathString evaluates a jsonpath expression expected to yield one
// string.
func pathString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("parsing %q: not a string: %v", path, jval)
	}
	return s, nil
}
