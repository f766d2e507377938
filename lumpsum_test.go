package fundlens

import (
	"errors"
	"testing"

	"github.com/fundlens/fundlens/date"
)

func TestLumpSum(t *testing.T) {
	// Daily NAV rising linearly from 100 to 200 over one year.
	s := linearSeries(t, "2020-01-01", "2021-01-01", 100, 200)

	res, err := LumpSum(s, LumpSumRequest{
		Amount: 10000,
		From:   date.MustParse("2020-01-01"),
		To:     date.MustParse("2021-01-01"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Units != 100 {
		t.Errorf("Units = %v, want 100", res.Units)
	}
	if res.CurrentValue != 20000 {
		t.Errorf("CurrentValue = %v, want 20000", res.CurrentValue)
	}
	if res.TotalProfit != 10000 {
		t.Errorf("TotalProfit = %v, want 10000", res.TotalProfit)
	}
	if res.AbsoluteReturn != 100 {
		t.Errorf("AbsoluteReturn = %v, want 100", res.AbsoluteReturn)
	}
	// Doubling over 366 days annualizes to just under 100%.
	approx(t, "AnnualizedReturn", res.AnnualizedReturn, 99.62, 0.01)
	approx(t, "PeriodYears", res.PeriodYears, 1.0, 0.01)

	if n := len(res.Timeline); n != 13 {
		t.Fatalf("len(Timeline) = %d, want 13 monthly points", n)
	}
	last := res.Timeline[len(res.Timeline)-1]
	if last.Date != date.MustParse("2021-01-01") || last.Value != 20000 {
		t.Errorf("final timeline point = %s/%v, want 2021-01-01/20000", last.Date, last.Value)
	}
}

func TestLumpSumResolvesAroundGaps(t *testing.T) {
	// Start falls in a gap and resolves backward; end falls in a gap
	// and resolves forward.
	s := sparseSeries(t, map[string]float64{
		"2020-01-01": 100,
		"2020-06-01": 150,
		"2021-01-10": 200,
	})
	res, err := LumpSum(s, LumpSumRequest{
		Amount: 1000,
		From:   date.MustParse("2020-01-15"),
		To:     date.MustParse("2021-01-05"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.StartNav != 100 {
		t.Errorf("StartNav = %v, want 100 (resolved backward)", res.StartNav)
	}
	if res.EndNav != 200 {
		t.Errorf("EndNav = %v, want 200 (resolved forward)", res.EndNav)
	}
}

func TestLumpSumErrors(t *testing.T) {
	s := flatSeries(t, "2020-01-01", "2020-12-31", 100)

	tests := []struct {
		name string
		req  LumpSumRequest
		want error
	}{
		{
			"non-positive amount",
			LumpSumRequest{Amount: 0, From: date.New(2020, 1, 1), To: date.New(2020, 6, 1)},
			ErrInvalidRequest,
		},
		{
			"inverted dates",
			LumpSumRequest{Amount: 100, From: date.New(2020, 6, 1), To: date.New(2020, 1, 1)},
			ErrInvalidRequest,
		},
		{
			"start before history",
			LumpSumRequest{Amount: 100, From: date.New(2019, 1, 1), To: date.New(2020, 6, 1)},
			ErrNoValidNav,
		},
		{
			"end after history",
			LumpSumRequest{Amount: 100, From: date.New(2020, 1, 1), To: date.New(2021, 6, 1)},
			ErrNoValidNav,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LumpSum(s, tc.req); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := LumpSum(NavSeries{}, LumpSumRequest{Amount: 100, From: date.New(2020, 1, 1), To: date.New(2020, 6, 1)}); !errors.Is(err, ErrNoData) {
		t.Errorf("empty series err = %v, want ErrNoData", err)
	}
}
