package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fundlens/fundlens"
	"github.com/google/subcommands"
)

// returnsCmd holds the flags for the 'returns' subcommand.
type returnsCmd struct {
	scheme int
	period string
	from   string
	to     string
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "trailing returns for a scheme" }
func (*returnsCmd) Usage() string {
	return `fundlens returns -scheme <code> [-period 1y | -from <date> -to <date>]

  Reports simple and annualized return over a standard trailing period
  (1m, 3m, 6m, 1y) anchored at the newest NAV, or over a custom range.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.scheme, "scheme", 0, "Numeric scheme code")
	f.StringVar(&c.period, "period", "", "Trailing period (1m, 3m, 6m, 1y)")
	f.StringVar(&c.from, "from", "", "Range start (yyyy-mm-dd)")
	f.StringVar(&c.to, "to", "", "Range end (yyyy-mm-dd)")
}

func (c *returnsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.period != "" && c.from != "" {
		fmt.Fprintln(os.Stderr, "-period and -from cannot be used together")
		return subcommands.ExitUsageError
	}
	series, status := fetchSeries(ctx, c.scheme)
	if status != subcommands.ExitSuccess {
		return status
	}

	var res *fundlens.ReturnsResult
	var err error
	if c.period != "" {
		var period fundlens.Period
		period, err = fundlens.ParsePeriod(c.period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
			return subcommands.ExitUsageError
		}
		res, err = fundlens.ReturnsForPeriod(series, period)
	} else {
		from, to, status := parseRange(c.from, c.to)
		if status != subcommands.ExitSuccess {
			return status
		}
		res, err = fundlens.ReturnsBetween(series, from, to)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	annualized := "n/a"
	if res.AnnualizedReturn != nil {
		annualized = fmt.Sprintf("%.2f%%", *res.AnnualizedReturn)
	}
	md := fmt.Sprintf(`# Returns for scheme %d

| | |
|---|---:|
| Window | %s to %s |
| Start NAV | %.4f |
| End NAV | %.4f |
| Simple return | %.2f%% |
| Annualized return | %s |
`, c.scheme, res.StartDate, res.EndDate, res.StartNav, res.EndNav,
		res.SimpleReturn, annualized)
	printMarkdown(md)
	return subcommands.ExitSuccess
}
