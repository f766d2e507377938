package fundlens

import (
	"math"
	"testing"

	"github.com/fundlens/fundlens/date"
)

// linearSeries builds a daily series whose NAV rises linearly from
// startNav on from to endNav on to, inclusive.
func linearSeries(t *testing.T, from, to string, startNav, endNav float64) NavSeries {
	t.Helper()
	a := date.MustParse(from)
	b := date.MustParse(to)
	span := date.DaysBetween(a, b)
	points := make([]NavPoint, 0, span+1)
	for i := 0; i <= span; i++ {
		nav := startNav + (endNav-startNav)*float64(i)/float64(span)
		points = append(points, NavPoint{Date: a.Add(i), Nav: nav})
	}
	return NewNavSeries(points)
}

// flatSeries builds a daily series with a constant NAV.
func flatSeries(t *testing.T, from, to string, nav float64) NavSeries {
	t.Helper()
	return linearSeries(t, from, to, nav, nav)
}

// sparseSeries builds a series from ISO-date→NAV pairs.
func sparseSeries(t *testing.T, navs map[string]float64) NavSeries {
	t.Helper()
	points := make([]NavPoint, 0, len(navs))
	for d, nav := range navs {
		points = append(points, NavPoint{Date: date.MustParse(d), Nav: nav})
	}
	return NewNavSeries(points)
}

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}
