package fundlens

import (
	"fmt"
	"math"

	"github.com/fundlens/fundlens/date"
)

// SWPRequest describes a systematic withdrawal plan: an initial corpus
// drawn down by a fixed amount at every scheduled date.
type SWPRequest struct {
	InitialInvestment float64   `json:"initialInvestment"`
	WithdrawalAmount  float64   `json:"withdrawalAmount"`
	Frequency         Frequency `json:"frequency"`
	From              date.Date `json:"from"`
	To                date.Date `json:"to"`
}

func (r SWPRequest) validate() error {
	if r.InitialInvestment <= 0 {
		return fmt.Errorf("%w: initial investment must be positive", ErrInvalidRequest)
	}
	if r.WithdrawalAmount <= 0 {
		return fmt.Errorf("%w: withdrawal amount must be positive", ErrInvalidRequest)
	}
	if _, err := ParseFrequency(string(r.Frequency)); err != nil {
		return err
	}
	if r.From.IsZero() || r.To.IsZero() || !r.From.Before(r.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidRequest)
	}
	return nil
}

// SWPResult is the outcome of a systematic withdrawal plan.
type SWPResult struct {
	InitialInvestment float64         `json:"initialInvestment"`
	TotalWithdrawn    float64         `json:"totalWithdrawn"`
	FinalCorpus       float64         `json:"finalCorpus"`
	TotalWithdrawals  int             `json:"totalWithdrawals"`
	DurationMonths    int             `json:"durationMonths"`
	AnnualizedReturn  float64         `json:"annualizedReturn"`
	Timeline          []TimelinePoint `json:"timeline"`
	Frequency         Frequency       `json:"frequency"`
}

// SWP simulates periodic withdrawals. The corpus buys units at the NAV
// nearest the start date, then each scheduled withdrawal redeems units
// at the NAV on or before its date, never more than the corpus holds.
// A withdrawal date with no resolvable NAV fails the computation; an
// exhausted corpus ends it. The annualized rate treats withdrawals
// plus the residual corpus as the total return on the initial
// investment.
func SWP(s NavSeries, r SWPRequest) (*SWPResult, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if s.Empty() {
		return nil, ErrNoData
	}

	start, ok := s.ResolveNearest(r.From)
	if !ok {
		return nil, fmt.Errorf("%w for start date %s", ErrNoValidNav, r.From)
	}
	units := r.InitialInvestment / start.Nav
	corpus := r.InitialInvestment

	timeline := []TimelinePoint{{
		Date:   r.From,
		Corpus: round2(corpus),
		Units:  round4(units),
	}}

	var (
		totalWithdrawn   float64
		totalWithdrawals int
	)
	for _, d := range Schedule(r.From, r.To, r.Frequency) {
		if corpus <= 0 {
			break
		}
		p, ok := s.ResolveBackward(d)
		if !ok {
			return nil, fmt.Errorf("%w for withdrawal date %s", ErrNoValidNav, d)
		}

		value := units * p.Nav
		actual := math.Min(r.WithdrawalAmount, value)
		units -= actual / p.Nav
		totalWithdrawn += actual
		totalWithdrawals++
		corpus = units * p.Nav

		timeline = append(timeline, TimelinePoint{
			Date:       d,
			Corpus:     round2(corpus),
			Withdrawal: round2(actual),
			Units:      round4(units),
		})
	}

	totalDays := date.DaysBetween(r.From, r.To)
	durationMonths := int(math.Round(float64(totalDays) / 30.44))
	annualized := annualize((corpus+totalWithdrawn)/r.InitialInvestment, totalDays) * 100

	return &SWPResult{
		InitialInvestment: r.InitialInvestment,
		TotalWithdrawn:    round2(totalWithdrawn),
		FinalCorpus:       round2(corpus),
		TotalWithdrawals:  totalWithdrawals,
		DurationMonths:    durationMonths,
		AnnualizedReturn:  round2(annualized),
		Timeline:          timeline,
		Frequency:         r.Frequency,
	}, nil
}
