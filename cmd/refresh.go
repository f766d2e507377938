package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fundlens/fundlens/batch"
	"github.com/google/subcommands"
)

type refreshCmd struct{}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "rebuild the active-scheme cache" }
func (*refreshCmd) Usage() string {
	return `fundlens refresh

  Fetches the active scheme universe and each scheme's latest NAV from
  the provider, then replaces the cached universe in mongo. This is
  the same job 'serve' runs on its cron schedule.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	log := NewLogger(cfg)

	st, err := OpenStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to mongo: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close(context.Background())

	refresher := batch.NewRefresher(NewProvider(cfg), st, log, cfg.Workers, cfg.RateLimit)
	if err := refresher.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Refresh failed: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
