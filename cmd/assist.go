package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fundlens/fundlens/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "interactive AI assistant for fund analysis" }
func (*assistCmd) Usage() string {
	return `fundlens assist [question ...]

  Starts an interactive session with an AI assistant that can look up
  schemes and run the return calculators on real NAV data. Requires a
  Gemini API key (gemini_api_key in the config or FUNDLENS_GEMINI_API_KEY).
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if cfg.GeminiAPIKey == "" {
		fmt.Fprintln(os.Stderr, "A Gemini API key is required, set FUNDLENS_GEMINI_API_KEY")
		return subcommands.ExitUsageError
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating Gemini client: %v\n", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin,
		agent.NewAnalyst(NewProvider(cfg)),
		agent.NewResearcher(),
	)
	if err := a.Run(ctx, client, f.Args()...); err != nil {
		fmt.Fprintf(os.Stderr, "Assistant error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
