package fundlens

import (
	"errors"
	"math"
	"testing"

	"github.com/fundlens/fundlens/date"
)

func TestRollingReturns(t *testing.T) {
	// Monthly NAVs growing exactly 10% per year over three years.
	start := date.MustParse("2018-01-01")
	var points []NavPoint
	for i := 0; i < 36; i++ {
		points = append(points, NavPoint{
			Date: start.AddMonths(i),
			Nav:  100 * math.Pow(1.1, float64(i)/12),
		})
	}
	s := NewNavSeries(points)

	res, err := RollingReturns(s, RollingRequest{
		WindowYears: 1,
		From:        date.MustParse("2018-01-01"),
		To:          date.MustParse("2020-12-01"),
	})
	if err != nil {
		t.Fatal(err)
	}

	// 30 starts retain a window of at least 180 days; the last five
	// are too close to the range's end.
	if res.Stats.TotalPeriods != 30 {
		t.Errorf("TotalPeriods = %d, want 30", res.Stats.TotalPeriods)
	}
	if res.Stats.CompletePeriods != 25 {
		t.Errorf("CompletePeriods = %d, want 25", res.Stats.CompletePeriods)
	}
	if res.Stats.PositiveReturns != 30 {
		t.Errorf("PositiveReturns = %d, want 30", res.Stats.PositiveReturns)
	}

	first := res.Periods[0]
	if first.Date != start {
		t.Errorf("Periods[0].Date = %s, want %s", first.Date, start)
	}
	if first.PeriodDays != 365 || !first.IsComplete {
		t.Errorf("Periods[0] = %+v, want a complete 365-day window", first)
	}
	approx(t, "Periods[0].Return", first.Return, 10.0, 0.01)

	for _, p := range res.Periods {
		if p.PeriodDays < 180 {
			t.Errorf("period starting %s spans %d days, want >= 180", p.Date, p.PeriodDays)
		}
	}
}

func TestRollingReturnsNoPeriods(t *testing.T) {
	// Every candidate window in a 150-day series falls short of the
	// 180-day minimum.
	s := flatSeries(t, "2020-01-01", "2020-05-30", 100)
	_, err := RollingReturns(s, RollingRequest{
		WindowYears: 1,
		From:        date.MustParse("2020-01-01"),
		To:          date.MustParse("2020-05-30"),
	})
	if !errors.Is(err, ErrNoPeriodsFound) {
		t.Errorf("err = %v, want ErrNoPeriodsFound", err)
	}
}

func TestRollingReturnsEmptyRange(t *testing.T) {
	s := flatSeries(t, "2020-01-01", "2020-12-31", 100)
	_, err := RollingReturns(s, RollingRequest{
		WindowYears: 1,
		From:        date.MustParse("2015-01-01"),
		To:          date.MustParse("2015-12-31"),
	})
	if !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestRollingReturnsValidation(t *testing.T) {
	s := flatSeries(t, "2020-01-01", "2020-12-31", 100)
	_, err := RollingReturns(s, RollingRequest{
		WindowYears: 0,
		From:        date.MustParse("2020-01-01"),
		To:          date.MustParse("2020-12-31"),
	})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
}
