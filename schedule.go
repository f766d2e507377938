package fundlens

import (
	"fmt"

	"github.com/fundlens/fundlens/date"
)

// Frequency is the cadence of a periodic investment or withdrawal.
type Frequency string

const (
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// ParseFrequency validates a user-supplied frequency string.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case Monthly, Quarterly, Yearly:
		return Frequency(s), nil
	}
	return "", fmt.Errorf("%w: unknown frequency %q", ErrInvalidRequest, s)
}

// Months returns the number of months between consecutive events.
func (f Frequency) Months() int {
	switch f {
	case Quarterly:
		return 3
	case Yearly:
		return 12
	}
	return 1
}

// StepUpCadence is how often an escalating plan raises its amount.
type StepUpCadence string

const (
	StepUpQuarterly  StepUpCadence = "quarterly"
	StepUpHalfYearly StepUpCadence = "half-yearly"
	StepUpYearly     StepUpCadence = "yearly"
)

// Months returns the escalation interval in months. Unrecognised
// cadences fall back to quarterly, matching the most aggressive plan.
func (c StepUpCadence) Months() int {
	switch c {
	case StepUpYearly:
		return 12
	case StepUpHalfYearly:
		return 6
	}
	return 3
}

// Schedule returns the event dates for a plan running from 'from' to
// 'to' inclusive, stepping by the frequency's month count. Each step is
// taken from the previous event and normalized, so a plan starting on
// Jan 31 schedules Mar 2 or 3 for February and keeps that day-of-month
// afterwards.
func Schedule(from, to date.Date, freq Frequency) []date.Date {
	if to.Before(from) {
		return nil
	}
	step := freq.Months()
	var dates []date.Date
	for d := from; !d.After(to); d = d.AddMonths(step) {
		dates = append(dates, d)
	}
	return dates
}
