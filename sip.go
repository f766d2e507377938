package fundlens

import (
	"fmt"

	"github.com/fundlens/fundlens/date"
)

// SIPRequest describes a systematic investment plan: a fixed Amount
// purchased at every scheduled date from From to To.
type SIPRequest struct {
	Amount    float64   `json:"amount"`
	Frequency Frequency `json:"frequency"`
	From      date.Date `json:"from"`
	To        date.Date `json:"to"`
}

func (r SIPRequest) validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}
	if _, err := ParseFrequency(string(r.Frequency)); err != nil {
		return err
	}
	if r.From.IsZero() || r.To.IsZero() || !r.From.Before(r.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidRequest)
	}
	return nil
}

// SIPResult is the outcome of a systematic investment plan.
type SIPResult struct {
	TotalInvested       float64         `json:"totalInvested"`
	CurrentValue        float64         `json:"currentValue"`
	TotalUnits          float64         `json:"totalUnits"`
	AbsoluteReturn      float64         `json:"absoluteReturn"`
	AnnualizedReturn    float64         `json:"annualizedReturn"`
	Timeline            []TimelinePoint `json:"timeline"`
	Frequency           Frequency       `json:"frequency"`
	NumberOfInvestments int             `json:"numberOfInvestments"`
}

// SIP simulates periodic purchases. Every installment must resolve to
// a NAV on or before its scheduled date; a single unresolvable
// installment fails the whole computation, because a partial plan
// would misstate the invested amount. The final corpus is valued at
// the newest NAV in the series, and the annualized rate spans the
// requested dates rather than the resolved ones.
func SIP(s NavSeries, r SIPRequest) (*SIPResult, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if s.Empty() {
		return nil, ErrNoData
	}

	dates := Schedule(r.From, r.To, r.Frequency)
	var (
		totalInvested float64
		totalUnits    float64
		timeline      []TimelinePoint
	)
	for _, d := range dates {
		totalInvested += r.Amount
		p, ok := s.ResolveBackward(d)
		if !ok {
			return nil, fmt.Errorf("%w for investment date %s", ErrNoValidNav, d)
		}
		totalUnits += r.Amount / p.Nav
		timeline = append(timeline, TimelinePoint{
			Date:     d,
			Value:    round2(totalUnits * p.Nav),
			Invested: totalInvested,
			Units:    round4(totalUnits),
		})
	}

	latest, _ := s.Latest()
	currentValue := totalUnits * latest.Nav
	totalDays := date.DaysBetween(r.From, r.To)
	annualized := annualize(currentValue/totalInvested, totalDays) * 100

	return &SIPResult{
		TotalInvested:       round2(totalInvested),
		CurrentValue:        round2(currentValue),
		TotalUnits:          round4(totalUnits),
		AbsoluteReturn:      round2((currentValue - totalInvested) / totalInvested * 100),
		AnnualizedReturn:    round2(annualized),
		Timeline:            timeline,
		Frequency:           r.Frequency,
		NumberOfInvestments: len(dates),
	}, nil
}
