package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fundlens/fundlens/batch"
	"github.com/fundlens/fundlens/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	noCron bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the API server and the scheduled jobs" }
func (*serveCmd) Usage() string {
	return `fundlens serve [-no-cron]

  Runs the HTTP API until interrupted. Unless -no-cron is given, the
  nightly scheme-universe refresh and the SIP debit run are scheduled
  on the configured cron spec.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noCron, "no-cron", false, "Disable the scheduled jobs")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	log := NewLogger(cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := OpenStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to mongo: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close(context.Background())

	funds := NewProvider(cfg)

	if !c.noCron {
		scheduler, err := batch.NewScheduler(cfg.CronTimezone, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building scheduler: %v\n", err)
			return subcommands.ExitFailure
		}
		refresher := batch.NewRefresher(funds, st, log, cfg.Workers, cfg.RateLimit)
		processor := batch.NewSIPProcessor(st, funds, log)

		jobCtx := ctx
		if err := scheduler.Add(cfg.CronSpec, "scheme-refresh", func() error {
			return refresher.Run(jobCtx)
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error scheduling refresh: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := scheduler.Add(cfg.CronSpec, "process-sips", func() error {
			return processor.Run(jobCtx)
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error scheduling SIP run: %v\n", err)
			return subcommands.ExitFailure
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := server.New(st, funds, log)
	if err := srv.Run(ctx, cfg.Listen); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
