package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fundlens/fundlens"
	"github.com/fundlens/fundlens/date"
	"github.com/google/subcommands"
)

// rollingCmd holds the flags for the 'rolling' subcommand.
type rollingCmd struct {
	scheme int
	window int
	from   string
	to     string
}

func (*rollingCmd) Name() string     { return "rolling" }
func (*rollingCmd) Synopsis() string { return "rolling-window return analysis" }
func (*rollingCmd) Usage() string {
	return `fundlens rolling -scheme <code> -window <years> -from <date> -to <date>

  Computes the annualized return of every window starting at each NAV
  date in the range, and summarises the distribution.
`
}

func (c *rollingCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.scheme, "scheme", 0, "Numeric scheme code")
	f.IntVar(&c.window, "window", 3, "Window length in years")
	f.StringVar(&c.from, "from", "", "Range start (yyyy-mm-dd)")
	f.StringVar(&c.to, "to", date.Today().String(), "Range end (yyyy-mm-dd)")
}

func (c *rollingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, status := fetchSeries(ctx, c.scheme)
	if status != subcommands.ExitSuccess {
		return status
	}
	from, to, status := parseRange(c.from, c.to)
	if status != subcommands.ExitSuccess {
		return status
	}

	res, err := fundlens.RollingReturns(series, fundlens.RollingRequest{
		WindowYears: c.window,
		From:        from,
		To:          to,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %d-year rolling returns for scheme %d\n\n", c.window, c.scheme)
	fmt.Fprintf(&b, "| | |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Windows | %d (%d complete) |\n", res.Stats.TotalPeriods, res.Stats.CompletePeriods)
	fmt.Fprintf(&b, "| Positive | %d |\n", res.Stats.PositiveReturns)
	fmt.Fprintf(&b, "| Minimum | %.2f%% |\n", res.Stats.MinReturn)
	fmt.Fprintf(&b, "| Average | %.2f%% |\n", res.Stats.AvgReturn)
	fmt.Fprintf(&b, "| Maximum | %.2f%% |\n", res.Stats.MaxReturn)
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
