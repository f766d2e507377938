package fundlens

import (
	"fmt"
	"math"

	"github.com/fundlens/fundlens/date"
)

// StepUpSWPRequest describes a monthly withdrawal plan whose
// withdrawal grows by StepUpRate percent every StepUpFrequency
// interval.
type StepUpSWPRequest struct {
	InitialCorpus     float64       `json:"initialCorpus"`
	InitialWithdrawal float64       `json:"initialWithdrawal"`
	StepUpRate        float64       `json:"stepUpRate"`
	StepUpFrequency   StepUpCadence `json:"stepUpFrequency"`
	WithdrawalYears   int           `json:"withdrawalYears"`
	From              date.Date     `json:"from"`
	To                date.Date     `json:"to"`
}

func (r StepUpSWPRequest) validate() error {
	if r.InitialCorpus <= 0 {
		return fmt.Errorf("%w: initial corpus must be positive", ErrInvalidRequest)
	}
	if r.InitialWithdrawal <= 0 {
		return fmt.Errorf("%w: initial withdrawal must be positive", ErrInvalidRequest)
	}
	if r.StepUpRate < 0 {
		return fmt.Errorf("%w: step-up rate must not be negative", ErrInvalidRequest)
	}
	if r.WithdrawalYears <= 0 {
		return fmt.Errorf("%w: withdrawal years must be positive", ErrInvalidRequest)
	}
	if r.From.IsZero() || r.To.IsZero() || !r.From.Before(r.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidRequest)
	}
	return nil
}

// StepUpSWPYear is one row of the plan's per-year summary.
type StepUpSWPYear struct {
	Year           int     `json:"year"`
	Corpus         float64 `json:"corpus"`
	Withdrawal     float64 `json:"withdrawal"`
	TotalWithdrawn float64 `json:"totalWithdrawn"`
}

// StepUpSWPResult is the outcome of an escalating withdrawal plan.
type StepUpSWPResult struct {
	InitialCorpus    float64         `json:"initialCorpus"`
	FinalCorpus      float64         `json:"finalCorpus"`
	TotalWithdrawn   float64         `json:"totalWithdrawn"`
	LastWithdrawal   float64         `json:"lastWithdrawal"`
	AnnualizedReturn float64         `json:"annualizedReturn"`
	DurationYears    float64         `json:"durationYears"`
	StepUpCount      int             `json:"stepUpCount"`
	TotalUnits       float64         `json:"totalUnits"`
	Timeline         []TimelinePoint `json:"timeline"`
	YearlySummary    []StepUpSWPYear `json:"yearlySummary"`
}

// StepUpSWP simulates monthly withdrawals that escalate over time. The
// requested dates are first clamped into the span the series covers.
// The withdrawal rises before installment i whenever i is a non-zero
// multiple of the cadence. Every date resolves to the nearest NAV,
// backward first; a date with none is skipped, and the simulation ends
// when the corpus runs out. A summary row is emitted after each plan
// year.
func StepUpSWP(s NavSeries, r StepUpSWPRequest) (*StepUpSWPResult, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if s.Empty() {
		return nil, ErrNoData
	}

	from := s.Clamp(r.From)
	to := s.Clamp(r.To)
	if to.Before(from) {
		return nil, ErrNoData
	}

	start, ok := s.ResolveNearest(from)
	if !ok {
		return nil, fmt.Errorf("%w for start date %s", ErrNoValidNav, from)
	}
	units := r.InitialCorpus / start.Nav
	corpus := r.InitialCorpus

	dates := Schedule(from, to, Monthly)
	stepUpMonths := r.StepUpFrequency.Months()

	var (
		totalWithdrawn float64
		stepUpCount    int
		timeline       []TimelinePoint
		yearly         []StepUpSWPYear
	)
	withdrawal := r.InitialWithdrawal
	for i, d := range dates {
		if corpus <= 0 {
			break
		}
		if i > 0 && i%stepUpMonths == 0 {
			withdrawal *= 1 + r.StepUpRate/100
			stepUpCount++
		}

		p, ok := s.ResolveNearest(d)
		if !ok {
			continue
		}

		value := units * p.Nav
		actual := math.Min(withdrawal, value)
		units -= actual / p.Nav
		totalWithdrawn += actual
		corpus = math.Max(0, units*p.Nav)

		if i%12 == 11 || i == len(dates)-1 {
			yearly = append(yearly, StepUpSWPYear{
				Year:           i/12 + 1,
				Corpus:         round2(corpus),
				Withdrawal:     round2(withdrawal),
				TotalWithdrawn: round2(totalWithdrawn),
			})
		}
		if sampled(i, len(dates), 3) {
			timeline = append(timeline, TimelinePoint{
				Date:       d,
				Corpus:     round2(corpus),
				Withdrawal: round2(actual),
			})
		}
	}

	totalDays := date.DaysBetween(from, to)
	annualized := annualize((corpus+totalWithdrawn)/r.InitialCorpus, totalDays) * 100
	durationYears := float64(len(dates)) / 12

	return &StepUpSWPResult{
		InitialCorpus:    r.InitialCorpus,
		FinalCorpus:      round2(corpus),
		TotalWithdrawn:   round2(totalWithdrawn),
		LastWithdrawal:   round2(withdrawal),
		AnnualizedReturn: round2(annualized),
		DurationYears:    math.Round(durationYears*10) / 10,
		StepUpCount:      stepUpCount,
		TotalUnits:       round4(units),
		Timeline:         timeline,
		YearlySummary:    yearly,
	}, nil
}
