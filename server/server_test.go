package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fundlens/fundlens"
	"github.com/fundlens/fundlens/date"
	"github.com/fundlens/fundlens/mfapi"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider serves a fixed series without touching the network.
type stubProvider struct {
	series fundlens.NavSeries
	err    error
}

func (p *stubProvider) Scheme(ctx context.Context, code int) (mfapi.SchemeMeta, []fundlens.RawNav, error) {
	if p.err != nil {
		return mfapi.SchemeMeta{}, nil, p.err
	}
	return mfapi.SchemeMeta{SchemeCode: code, SchemeName: "Test Fund Direct Growth"}, nil, nil
}

func (p *stubProvider) NavSeries(ctx context.Context, code int) (fundlens.NavSeries, error) {
	if p.err != nil {
		return fundlens.NavSeries{}, p.err
	}
	return p.series, nil
}

func (p *stubProvider) LatestNav(ctx context.Context, code int) (fundlens.NavPoint, error) {
	if p.err != nil {
		return fundlens.NavPoint{}, p.err
	}
	latest, _ := p.series.Latest()
	return latest, nil
}

// growingSeries runs two years of daily NAVs from 100, rising 0.05 a
// day.
func growingSeries() fundlens.NavSeries {
	start := date.New(2020, 1, 1)
	points := make([]fundlens.NavPoint, 0, 731)
	for i := 0; i <= 730; i++ {
		points = append(points, fundlens.NavPoint{
			Date: start.Add(i),
			Nav:  100 + float64(i)*0.05,
		})
	}
	return fundlens.NewNavSeries(points)
}

func testServer(t *testing.T, p NavProvider) *Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(nil, p, log)
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestLumpSumEndpoint(t *testing.T) {
	s := testServer(t, &stubProvider{series: growingSeries()})
	rec := do(t, s, http.MethodPost, "/api/scheme/120503/lumpsum", map[string]interface{}{
		"investmentAmount": 10000,
		"from":             "2020-01-01",
		"to":               "2021-01-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res fundlens.LumpSumResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.InDelta(t, 10000, res.InvestmentAmount, 0.001)
	assert.InDelta(t, 100, res.StartNav, 0.001)
	assert.Greater(t, res.CurrentValue, res.InvestmentAmount)
	assert.NotEmpty(t, res.Timeline)
}

func TestLumpSumRejectsBadRange(t *testing.T) {
	s := testServer(t, &stubProvider{series: growingSeries()})
	rec := do(t, s, http.MethodPost, "/api/scheme/120503/lumpsum", map[string]interface{}{
		"investmentAmount": 10000,
		"from":             "2021-01-01",
		"to":               "2020-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReturnsEndpoint(t *testing.T) {
	s := testServer(t, &stubProvider{series: growingSeries()})

	t.Run("by period", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/scheme/120503/returns?period=1y", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var res fundlens.ReturnsResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Greater(t, res.SimpleReturn, 0.0)
	})

	t.Run("by range", func(t *testing.T) {
		rec := do(t, s, http.MethodGet,
			"/api/scheme/120503/returns?from=2020-01-01&to=2020-06-30", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing params", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/scheme/120503/returns", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown period", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/scheme/120503/returns?period=7y", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRollingEndpoint(t *testing.T) {
	s := testServer(t, &stubProvider{series: growingSeries()})
	rec := do(t, s, http.MethodPost, "/api/scheme/120503/rolling", map[string]interface{}{
		"windowYears": 1,
		"from":        "2020-01-01",
		"to":          "2021-12-31",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var res fundlens.RollingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotZero(t, res.Stats.TotalPeriods)
}

func TestSchemeNotFoundMapsTo404(t *testing.T) {
	s := testServer(t, &stubProvider{err: fmt.Errorf("scheme 99: %w", mfapi.ErrSchemeNotFound)})
	rec := do(t, s, http.MethodPost, "/api/scheme/99/sip", map[string]interface{}{
		"amount":    1000,
		"frequency": "monthly",
		"from":      "2020-01-01",
		"to":        "2021-01-01",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMalformedBody(t *testing.T) {
	s := testServer(t, &stubProvider{series: growingSeries()})
	req := httptest.NewRequest(http.MethodPost, "/api/scheme/120503/swp",
		bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
