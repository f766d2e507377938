package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fundlens/fundlens/batch"
	"github.com/google/subcommands"
)

type processSIPsCmd struct{}

func (*processSIPsCmd) Name() string     { return "process-sips" }
func (*processSIPsCmd) Synopsis() string { return "debit every SIP whose date has arrived" }
func (*processSIPsCmd) Usage() string {
	return `fundlens process-sips

  Collects all due SIP installments against their portfolios at the
  latest NAV. Failed debits are recorded as FAILED transactions and
  retried on the next run.
`
}

func (c *processSIPsCmd) SetFlags(f *flag.FlagSet) {}

func (c *processSIPsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	processor := batch.NewSIPProcessor(st, NewProvider(cfg), log)
	if err := processor.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "SIP run failed: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
