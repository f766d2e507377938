package fundlens

import (
	"strconv"

	"github.com/fundlens/fundlens/date"
)

// RawNav is a single NAV row as delivered by the provider: both fields
// are strings, the date in dd-mm-yyyy form.
type RawNav struct {
	Date string `json:"date" bson:"date"`
	Nav  string `json:"nav" bson:"nav"`
}

// NavPoint is a parsed NAV observation.
type NavPoint struct {
	Date date.Date `json:"date"`
	Nav  float64   `json:"nav"`
}

// NavSeries is a scheme's NAV history, sorted ascending by date with at
// most one observation per day. The zero value is an empty series.
type NavSeries struct {
	history date.History[float64]
}

// BuildNavSeries parses raw provider rows into a series. Rows with an
// unparseable date, an unparseable NAV, or a non-positive NAV are
// dropped. When two rows carry the same date the later row wins.
// Providers deliver rows newest-first; the series is sorted regardless
// of input order.
func BuildNavSeries(raw []RawNav) NavSeries {
	var s NavSeries
	for _, r := range raw {
		day, err := date.ParseDMY(r.Date)
		if err != nil {
			continue
		}
		nav, err := strconv.ParseFloat(r.Nav, 64)
		if err != nil || nav <= 0 {
			continue
		}
		s.history.Append(day, nav)
	}
	return s
}

// NewNavSeries builds a series from already-parsed points, applying the
// same sorting and last-wins rules as BuildNavSeries.
func NewNavSeries(points []NavPoint) NavSeries {
	var s NavSeries
	for _, p := range points {
		if p.Nav <= 0 {
			continue
		}
		s.history.Append(p.Date, p.Nav)
	}
	return s
}

// Len returns the number of observations.
func (s NavSeries) Len() int { return s.history.Len() }

// Empty reports whether the series has no observations.
func (s NavSeries) Empty() bool { return s.history.Len() == 0 }

// Earliest returns the oldest observation.
func (s NavSeries) Earliest() (NavPoint, bool) {
	day, nav, ok := s.history.First()
	return NavPoint{Date: day, Nav: nav}, ok
}

// Latest returns the newest observation.
func (s NavSeries) Latest() (NavPoint, bool) {
	day, nav, ok := s.history.Latest()
	return NavPoint{Date: day, Nav: nav}, ok
}

// At returns the exact observation for day, if one exists.
func (s NavSeries) At(day date.Date) (float64, bool) {
	return s.history.Get(day)
}

// Point returns the i-th observation in ascending date order.
func (s NavSeries) Point(i int) NavPoint {
	day, nav := s.history.At(i)
	return NavPoint{Date: day, Nav: nav}
}

// Clamp narrows day into the series' covered range: dates before the
// earliest observation become the earliest date, dates after the latest
// become the latest.
func (s NavSeries) Clamp(day date.Date) date.Date {
	if first, _, ok := s.history.First(); ok && day.Before(first) {
		return first
	}
	if last, _, ok := s.history.Latest(); ok && day.After(last) {
		return last
	}
	return day
}

// ResolveBackward returns the observation on day or, failing that, the
// nearest earlier one.
func (s NavSeries) ResolveBackward(day date.Date) (NavPoint, bool) {
	d, nav, ok := s.history.AsOf(day)
	return NavPoint{Date: d, Nav: nav}, ok
}

// ResolveForward returns the observation on day or, failing that, the
// nearest later one.
func (s NavSeries) ResolveForward(day date.Date) (NavPoint, bool) {
	d, nav, ok := s.history.From(day)
	return NavPoint{Date: d, Nav: nav}, ok
}

// ResolveNearest resolves backward first and falls forward only when no
// earlier observation exists, so a date inside the covered range always
// settles on or before itself.
func (s NavSeries) ResolveNearest(day date.Date) (NavPoint, bool) {
	if p, ok := s.ResolveBackward(day); ok {
		return p, true
	}
	return s.ResolveForward(day)
}
