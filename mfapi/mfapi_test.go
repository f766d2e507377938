package mfapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fundlens/fundlens/date"
)

const schemeBody = `{
  "meta": {
    "fund_house": "Axis Mutual Fund",
    "scheme_type": "Open Ended Schemes",
    "scheme_category": "Equity Scheme - Mid Cap Fund",
    "scheme_code": 120503,
    "scheme_name": "Axis Midcap Fund - Direct Plan - Growth",
    "isin_growth": "INF846K01EW2"
  },
  "data": [
    {"date": "03-06-2024", "nav": "104.2500"},
    {"date": "31-05-2024", "nav": "103.1000"},
    {"date": "30-05-2024", "nav": "102.0000"}
  ],
  "status": "SUCCESS"
}`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/mf", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
		  {"schemeCode": 120503, "schemeName": "Axis Midcap Fund", "isinGrowth": "INF846K01EW2", "isinDivReinvestment": ""},
		  {"schemeCode": 100001, "schemeName": "Closed Fund", "isinGrowth": "", "isinDivReinvestment": ""}
		]`))
	})
	mux.HandleFunc("/mf/120503", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(schemeBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testClient(t *testing.T) *Client {
	srv := testServer(t)
	// Plain transport: the disk cache would leak state across tests.
	return New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestActiveSchemes(t *testing.T) {
	c := testClient(t)
	active, err := c.ActiveSchemes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].SchemeCode != 120503 {
		t.Errorf("ActiveSchemes = %+v, want only 120503", active)
	}
}

func TestScheme(t *testing.T) {
	c := testClient(t)
	meta, raw, err := c.Scheme(context.Background(), 120503)
	if err != nil {
		t.Fatal(err)
	}
	if meta.FundHouse != "Axis Mutual Fund" || meta.SchemeCode != 120503 {
		t.Errorf("meta = %+v", meta)
	}
	if len(raw) != 3 || raw[0].Date != "03-06-2024" {
		t.Errorf("raw = %+v", raw)
	}
}

func TestNavSeries(t *testing.T) {
	c := testClient(t)
	s, err := c.NavSeries(context.Background(), 120503)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	latest, _ := s.Latest()
	if latest.Date != date.New(2024, 6, 3) || latest.Nav != 104.25 {
		t.Errorf("Latest() = %+v", latest)
	}
}

func TestLatestNav(t *testing.T) {
	c := testClient(t)
	p, err := c.LatestNav(context.Background(), 120503)
	if err != nil {
		t.Fatal(err)
	}
	if p.Date != date.New(2024, 6, 3) || p.Nav != 104.25 {
		t.Errorf("LatestNav = %+v", p)
	}
}

func TestSchemeNotFound(t *testing.T) {
	c := testClient(t)
	_, _, err := c.Scheme(context.Background(), 999999)
	if !errors.Is(err, ErrSchemeNotFound) {
		t.Errorf("err = %v, want ErrSchemeNotFound", err)
	}
}
