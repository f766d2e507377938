package fundlens

import (
	"fmt"

	"github.com/fundlens/fundlens/date"
)

// Period is a trailing window anchored at the newest NAV date.
type Period string

const (
	Period1M Period = "1m"
	Period3M Period = "3m"
	Period6M Period = "6m"
	Period1Y Period = "1y"
)

// ParsePeriod validates a user-supplied period string.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Period1M, Period3M, Period6M, Period1Y:
		return Period(s), nil
	}
	return "", fmt.Errorf("%w: unknown period %q", ErrInvalidRequest, s)
}

// startFrom computes the window's start date from its anchor.
func (p Period) startFrom(anchor date.Date) date.Date {
	switch p {
	case Period1M:
		return anchor.AddMonths(-1)
	case Period3M:
		return anchor.AddMonths(-3)
	case Period6M:
		return anchor.AddMonths(-6)
	}
	return anchor.AddYears(-1)
}

// ReturnsResult is a scheme's simple and annualized return over a
// window. AnnualizedReturn is nil for windows shorter than 30 days,
// where annualizing would amplify noise.
type ReturnsResult struct {
	StartDate        date.Date `json:"startDate"`
	EndDate          date.Date `json:"endDate"`
	StartNav         float64   `json:"startNAV"`
	EndNav           float64   `json:"endNAV"`
	SimpleReturn     float64   `json:"simpleReturn"`
	AnnualizedReturn *float64  `json:"annualizedReturn"`
}

// ReturnsForPeriod computes trailing returns for a named period. The
// window is anchored at the newest NAV date rather than today, so a
// scheme whose feed lags by a few days still reports over real data.
func ReturnsForPeriod(s NavSeries, p Period) (*ReturnsResult, error) {
	if _, err := ParsePeriod(string(p)); err != nil {
		return nil, err
	}
	if s.Empty() {
		return nil, ErrNoData
	}
	anchor, _ := s.Latest()
	return ReturnsBetween(s, p.startFrom(anchor.Date), anchor.Date)
}

// ReturnsBetween computes returns over an explicit date range. The
// start resolves backward, falling back to the earliest observation
// when the range predates the series; the end resolves backward with
// no fallback.
func ReturnsBetween(s NavSeries, from, to date.Date) (*ReturnsResult, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidRequest)
	}
	if s.Empty() {
		return nil, ErrNoData
	}

	start, ok := s.ResolveBackward(from)
	if !ok {
		start, _ = s.Earliest()
	}
	end, ok := s.ResolveBackward(to)
	if !ok {
		return nil, ErrInsufficientHistory
	}
	if start.Date.After(end.Date) {
		return nil, fmt.Errorf("%w: start resolves after end", ErrInsufficientHistory)
	}

	days := date.DaysBetween(start.Date, end.Date)
	simple := (end.Nav - start.Nav) / start.Nav * 100

	var annualized *float64
	if days >= 30 {
		v := round2(annualize(end.Nav/start.Nav, days) * 100)
		annualized = &v
	}

	return &ReturnsResult{
		StartDate:        start.Date,
		EndDate:          end.Date,
		StartNav:         start.Nav,
		EndNav:           end.Nav,
		SimpleReturn:     round2(simple),
		AnnualizedReturn: annualized,
	}, nil
}
