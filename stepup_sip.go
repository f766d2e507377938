package fundlens

import (
	"fmt"

	"github.com/fundlens/fundlens/date"
)

// StepUpSIPRequest describes a monthly SIP whose installment grows by
// StepUpRate percent every StepUpFrequency interval.
type StepUpSIPRequest struct {
	InitialAmount   float64       `json:"initialAmount"`
	StepUpRate      float64       `json:"stepUpRate"`
	StepUpFrequency StepUpCadence `json:"stepUpFrequency"`
	InvestmentYears int           `json:"investmentYears"`
	From            date.Date     `json:"from"`
	To              date.Date     `json:"to"`
}

func (r StepUpSIPRequest) validate() error {
	if r.InitialAmount <= 0 {
		return fmt.Errorf("%w: initial amount must be positive", ErrInvalidRequest)
	}
	if r.StepUpRate <= 0 {
		return fmt.Errorf("%w: step-up rate must be positive", ErrInvalidRequest)
	}
	if r.InvestmentYears <= 0 {
		return fmt.Errorf("%w: investment years must be positive", ErrInvalidRequest)
	}
	if r.From.IsZero() || r.To.IsZero() || !r.From.Before(r.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidRequest)
	}
	return nil
}

// StepUpSIPPoint is a sampled point on the escalating plan's timeline.
type StepUpSIPPoint struct {
	Date       date.Date `json:"date"`
	Investment float64   `json:"investment"`
	Corpus     float64   `json:"corpus"`
	SIPAmount  float64   `json:"sipAmount"`
}

// StepUpSIPResult is the outcome of an escalating SIP.
type StepUpSIPResult struct {
	TotalInvested    float64          `json:"totalInvested"`
	FinalCorpus      float64          `json:"finalCorpus"`
	TotalProfit      float64          `json:"totalProfit"`
	AnnualizedReturn float64          `json:"annualizedReturn"`
	LastSIPAmount    float64          `json:"lastSIPAmount"`
	StepUpCount      int              `json:"stepUpCount"`
	TotalUnits       float64          `json:"totalUnits"`
	Timeline         []StepUpSIPPoint `json:"timeline"`
	InvestmentMonths int              `json:"investmentMonths"`
}

// StepUpSIP simulates a monthly SIP with periodic escalation. The
// escalation is applied before installment i whenever i+1 is a
// multiple of the cadence, so a yearly plan raises its amount for the
// twelfth installment onwards. Installments with no resolvable NAV are
// skipped entirely: neither units nor invested amount accrue for them.
// The final corpus uses the NAV on the end date exactly if one exists,
// otherwise the newest NAV in the series.
func StepUpSIP(s NavSeries, r StepUpSIPRequest) (*StepUpSIPResult, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if s.Empty() {
		return nil, ErrNoData
	}

	dates := Schedule(r.From, r.To, Monthly)
	stepUpMonths := r.StepUpFrequency.Months()

	var (
		totalInvested float64
		totalUnits    float64
		stepUpCount   int
		timeline      []StepUpSIPPoint
	)
	amount := r.InitialAmount
	for i, d := range dates {
		if (i+1)%stepUpMonths == 0 {
			amount *= 1 + r.StepUpRate/100
			stepUpCount++
		}

		p, ok := s.ResolveBackward(d)
		if !ok {
			continue
		}
		totalInvested += amount
		totalUnits += amount / p.Nav

		if sampled(i, len(dates), 3) {
			timeline = append(timeline, StepUpSIPPoint{
				Date:       d,
				Investment: round2(totalInvested),
				Corpus:     round2(totalUnits * p.Nav),
				SIPAmount:  round2(amount),
			})
		}
	}
	if totalInvested == 0 {
		return nil, fmt.Errorf("%w for any installment", ErrNoValidNav)
	}

	finalNav, ok := s.At(r.To)
	if !ok {
		latest, _ := s.Latest()
		finalNav = latest.Nav
	}
	finalCorpus := totalUnits * finalNav

	totalDays := date.DaysBetween(r.From, r.To)
	annualized := annualize(finalCorpus/totalInvested, totalDays) * 100

	return &StepUpSIPResult{
		TotalInvested:    round2(totalInvested),
		FinalCorpus:      round2(finalCorpus),
		TotalProfit:      round2(finalCorpus - totalInvested),
		AnnualizedReturn: round2(annualized),
		LastSIPAmount:    round2(amount),
		StepUpCount:      stepUpCount,
		TotalUnits:       round4(totalUnits),
		Timeline:         timeline,
		InvestmentMonths: len(dates),
	}, nil
}
