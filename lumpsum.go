package fundlens

import (
	"fmt"

	"github.com/fundlens/fundlens/date"
)

// LumpSumRequest describes a single purchase held from From to To.
type LumpSumRequest struct {
	Amount float64   `json:"investmentAmount"`
	From   date.Date `json:"from"`
	To     date.Date `json:"to"`
}

func (r LumpSumRequest) validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("%w: investment amount must be positive", ErrInvalidRequest)
	}
	if r.From.IsZero() || r.To.IsZero() || !r.From.Before(r.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidRequest)
	}
	return nil
}

// LumpSumResult is the outcome of a lump-sum investment.
type LumpSumResult struct {
	InvestmentAmount float64         `json:"investmentAmount"`
	CurrentValue     float64         `json:"currentValue"`
	TotalProfit      float64         `json:"totalProfit"`
	AbsoluteReturn   float64         `json:"absoluteReturn"`
	AnnualizedReturn float64         `json:"annualizedReturn"`
	PeriodYears      float64         `json:"periodYears"`
	Units            float64         `json:"units"`
	StartNav         float64         `json:"startNAV"`
	EndNav           float64         `json:"endNAV"`
	Timeline         []TimelinePoint `json:"timeline"`
}

// LumpSum values a single purchase. The purchase date resolves
// backward to the nearest traded day and the redemption date resolves
// forward, so the investor is never credited a NAV that did not yet
// exist when buying nor one that had lapsed when selling.
func LumpSum(s NavSeries, r LumpSumRequest) (*LumpSumResult, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if s.Empty() {
		return nil, ErrNoData
	}

	start, ok := s.ResolveBackward(r.From)
	if !ok {
		return nil, fmt.Errorf("%w for investment date %s", ErrNoValidNav, r.From)
	}
	end, ok := s.ResolveForward(r.To)
	if !ok {
		return nil, fmt.Errorf("%w for redemption date %s", ErrNoValidNav, r.To)
	}

	units := r.Amount / start.Nav
	currentValue := units * end.Nav
	totalProfit := currentValue - r.Amount

	periodDays := date.DaysBetween(start.Date, end.Date)
	periodYears := float64(periodDays) / 365
	annualized := annualize(currentValue/r.Amount, periodDays) * 100

	// Monthly samples between the resolved dates, each valued at the
	// nearest prior NAV.
	var timeline []TimelinePoint
	for d := start.Date; !d.After(end.Date); d = d.AddMonths(1) {
		p, ok := s.ResolveBackward(d)
		if !ok {
			continue
		}
		timeline = append(timeline, TimelinePoint{
			Date:  d,
			Value: round2(units * p.Nav),
			Nav:   round4(p.Nav),
		})
	}
	if n := len(timeline); n == 0 || timeline[n-1].Date != end.Date {
		timeline = append(timeline, TimelinePoint{
			Date:  end.Date,
			Value: round2(currentValue),
			Nav:   round4(end.Nav),
		})
	}

	return &LumpSumResult{
		InvestmentAmount: r.Amount,
		CurrentValue:     round2(currentValue),
		TotalProfit:      round2(totalProfit),
		AbsoluteReturn:   round2(totalProfit / r.Amount * 100),
		AnnualizedReturn: round2(annualized),
		PeriodYears:      round2(periodYears),
		Units:            round4(units),
		StartNav:         round4(start.Nav),
		EndNav:           round4(end.Nav),
		Timeline:         timeline,
	}, nil
}
