package fundlens

import (
	"math"

	"github.com/fundlens/fundlens/date"
)

// TimelinePoint is one sampled observation in a mode's growth chart.
// Modes fill only the fields that make sense for them; the rest are
// omitted from JSON.
type TimelinePoint struct {
	Date       date.Date `json:"date"`
	Value      float64   `json:"value,omitempty"`
	Invested   float64   `json:"invested,omitempty"`
	Units      float64   `json:"units,omitempty"`
	Nav        float64   `json:"nav,omitempty"`
	Corpus     float64   `json:"corpus,omitempty"`
	Withdrawal float64   `json:"withdrawal"`
	Amount     float64   `json:"amount,omitempty"`
}

// round2 rounds to two decimals, the precision of reported currency
// amounts and percentages.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round4 rounds to four decimals, the precision of reported unit
// balances.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// sampled reports whether installment i of n should appear on a
// timeline thinned to every stride-th point. The last installment is
// always kept.
func sampled(i, n, stride int) bool {
	return i%stride == 0 || i == n-1
}

// annualize converts a growth ratio over a span of days into a yearly
// rate. It returns 0 when the span is not positive or the ratio is not
// a valid base.
func annualize(ratio float64, days int) float64 {
	if days <= 0 || ratio <= 0 {
		return 0
	}
	return math.Pow(ratio, 365/float64(days)) - 1
}
