package fundlens

import (
	"fmt"
	"math"
	"sort"

	"github.com/fundlens/fundlens/date"
)

// RollingRequest describes a rolling-returns analysis: annualized
// returns over every window of WindowYears starting at each NAV date
// between From and To.
type RollingRequest struct {
	WindowYears int       `json:"windowYears"`
	From        date.Date `json:"from"`
	To          date.Date `json:"to"`
}

func (r RollingRequest) validate() error {
	if r.WindowYears <= 0 {
		return fmt.Errorf("%w: window years must be positive", ErrInvalidRequest)
	}
	if r.From.IsZero() || r.To.IsZero() || !r.From.Before(r.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidRequest)
	}
	return nil
}

// RollingPeriod is one window of the analysis: an investment made on
// Date and held for roughly the window length.
type RollingPeriod struct {
	Date        date.Date `json:"date"`
	Return      float64   `json:"return"`
	StartNav    float64   `json:"startNav"`
	EndNav      float64   `json:"endNav"`
	PeriodDays  int       `json:"periodDays"`
	IsComplete  bool      `json:"isComplete"`
	PeriodYears float64   `json:"periodYears"`
}

// RollingStats summarises the retained windows.
type RollingStats struct {
	MinReturn       float64 `json:"minReturn"`
	MaxReturn       float64 `json:"maxReturn"`
	AvgReturn       float64 `json:"avgReturn"`
	PositiveReturns int     `json:"positiveReturns"`
	TotalPeriods    int     `json:"totalPeriods"`
	CompletePeriods int     `json:"completePeriods"`
}

// RollingResult is the outcome of a rolling-returns analysis.
type RollingResult struct {
	Periods []RollingPeriod `json:"periods"`
	Stats   RollingStats    `json:"stats"`
}

// RollingReturns computes annualized returns over every sliding window
// in [From, To]. For each NAV date the window ends at the later NAV
// date closest to start+WindowYears; ties settle on the earlier date.
// Windows shorter than 180 days are dropped, and a window counts as
// complete when it spans at least 90% of its nominal length, so
// partial windows near the range's end still contribute while being
// flagged.
func RollingReturns(s NavSeries, r RollingRequest) (*RollingResult, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	// Collect the in-range observations once.
	var points []NavPoint
	for i := range s.Len() {
		p := s.Point(i)
		if p.Date.Before(r.From) || p.Date.After(r.To) {
			continue
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, ErrNoData
	}

	var (
		periods  []RollingPeriod
		complete int
	)
	for i, start := range points {
		target := start.Date.AddYears(r.WindowYears)

		// Later observation nearest the target date. The candidates
		// are sorted, so binary-search the insertion point and compare
		// its neighbours, preferring the earlier date on ties.
		lo := i + 1
		if lo >= len(points) {
			continue
		}
		j := lo + sort.Search(len(points)-lo, func(k int) bool {
			return !points[lo+k].Date.Before(target)
		})
		if j >= len(points) {
			j = len(points) - 1
		} else if j > lo {
			after := date.DaysBetween(target, points[j].Date)
			before := date.DaysBetween(points[j-1].Date, target)
			if before <= after {
				j--
			}
		}
		end := points[j]

		days := date.DaysBetween(start.Date, end.Date)
		if days < 180 {
			continue
		}

		ret := annualize(end.Nav/start.Nav, days) * 100
		isComplete := float64(days) >= float64(r.WindowYears)*365*0.9
		if isComplete {
			complete++
		}
		periods = append(periods, RollingPeriod{
			Date:        start.Date,
			Return:      round2(ret),
			StartNav:    start.Nav,
			EndNav:      end.Nav,
			PeriodDays:  days,
			IsComplete:  isComplete,
			PeriodYears: math.Round(float64(days)/365*10) / 10,
		})
	}
	if len(periods) == 0 {
		return nil, ErrNoPeriodsFound
	}

	stats := RollingStats{
		MinReturn:       periods[0].Return,
		MaxReturn:       periods[0].Return,
		TotalPeriods:    len(periods),
		CompletePeriods: complete,
	}
	var sum float64
	for _, p := range periods {
		stats.MinReturn = math.Min(stats.MinReturn, p.Return)
		stats.MaxReturn = math.Max(stats.MaxReturn, p.Return)
		sum += p.Return
		if p.Return > 0 {
			stats.PositiveReturns++
		}
	}
	stats.AvgReturn = round2(sum / float64(len(periods)))

	return &RollingResult{Periods: periods, Stats: stats}, nil
}
