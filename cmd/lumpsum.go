package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fundlens/fundlens"
	"github.com/fundlens/fundlens/date"
	"github.com/google/subcommands"
)

// lumpsumCmd holds the flags for the 'lumpsum' subcommand.
type lumpsumCmd struct {
	scheme int
	amount float64
	from   string
	to     string
}

func (*lumpsumCmd) Name() string     { return "lumpsum" }
func (*lumpsumCmd) Synopsis() string { return "value a one-time investment in a scheme" }
func (*lumpsumCmd) Usage() string {
	return `fundlens lumpsum -scheme <code> -amount <rupees> -from <date> -to <date>

  Values a single purchase held between two dates against the scheme's
  real NAV history.
`
}

func (c *lumpsumCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.scheme, "scheme", 0, "Numeric scheme code")
	f.Float64Var(&c.amount, "amount", 0, "Investment amount in rupees")
	f.StringVar(&c.from, "from", "", "Purchase date (yyyy-mm-dd)")
	f.StringVar(&c.to, "to", date.Today().String(), "Redemption date (yyyy-mm-dd)")
}

func (c *lumpsumCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, status := fetchSeries(ctx, c.scheme)
	if status != subcommands.ExitSuccess {
		return status
	}
	from, to, status := parseRange(c.from, c.to)
	if status != subcommands.ExitSuccess {
		return status
	}

	res, err := fundlens.LumpSum(series, fundlens.LumpSumRequest{
		Amount: c.amount,
		From:   from,
		To:     to,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md := fmt.Sprintf(`# Lump sum in scheme %d

| | |
|---|---:|
| Invested | ₹%.2f |
| Current value | ₹%.2f |
| Profit | ₹%.2f |
| Absolute return | %.2f%% |
| Annualized return | %.2f%% |
| Units | %.4f |
| Start NAV | %.4f |
| End NAV | %.4f |
`, c.scheme, res.InvestmentAmount, res.CurrentValue, res.TotalProfit,
		res.AbsoluteReturn, res.AnnualizedReturn, res.Units, res.StartNav, res.EndNav)
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// fetchSeries loads a scheme's full NAV history, printing any error.
func fetchSeries(ctx context.Context, scheme int) (fundlens.NavSeries, subcommands.ExitStatus) {
	if scheme == 0 {
		fmt.Fprintln(os.Stderr, "-scheme is required")
		return fundlens.NavSeries{}, subcommands.ExitUsageError
	}
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return fundlens.NavSeries{}, subcommands.ExitFailure
	}
	series, err := NewProvider(cfg).NavSeries(ctx, scheme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching scheme %d: %v\n", scheme, err)
		return fundlens.NavSeries{}, subcommands.ExitFailure
	}
	return series, subcommands.ExitSuccess
}

func parseRange(from, to string) (date.Date, date.Date, subcommands.ExitStatus) {
	f, err := date.Parse(from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing from date: %v\n", err)
		return date.Date{}, date.Date{}, subcommands.ExitUsageError
	}
	t, err := date.Parse(to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing to date: %v\n", err)
		return date.Date{}, date.Date{}, subcommands.ExitUsageError
	}
	return f, t, subcommands.ExitSuccess
}
