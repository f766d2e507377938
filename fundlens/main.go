package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/fundlens/fundlens/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion runs and exits before any command executes.
	completion().Complete("fundlens")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	calcFlags := map[string]complete.Predictor{
		"scheme": predict.Nothing,
		"from":   predict.Nothing,
		"to":     predict.Nothing,
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
		},
		Sub: map[string]*complete.Command{
			"serve":        {Flags: map[string]complete.Predictor{"no-cron": predict.Nothing}},
			"refresh":      {},
			"process-sips": {},
			"lumpsum":      {Flags: calcFlags},
			"sip":          {Flags: calcFlags},
			"returns":      {Flags: calcFlags},
			"rolling":      {Flags: calcFlags},
			"topic":        {Args: predict.Set{"readme", "returns", "sip", "swp", "step-up", "rolling"}},
			"assist":       {},
		},
	}
}
