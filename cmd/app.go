// Package cmd implements the CLI application around the return
// engine: the API server, the batch jobs, and one-shot calculators.
package cmd

import (
	"context"
	"flag"

	"github.com/fundlens/fundlens/config"
	"github.com/fundlens/fundlens/mfapi"
	"github.com/fundlens/fundlens/store"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package calls Register() to install the subcommands, then
// Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "server")
	c.Register(&refreshCmd{}, "jobs")
	c.Register(&processSIPsCmd{}, "jobs")

	c.Register(&lumpsumCmd{}, "calculators")
	c.Register(&sipCmd{}, "calculators")
	c.Register(&returnsCmd{}, "calculators")
	c.Register(&rollingCmd{}, "calculators")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "documentation")
}

// As a CLI application it has a very short lived lifecycle, so it is
// ok to use global variables for the shared flags.

var configFile = flag.String("config", "", "Path to the fundlens.yaml configuration file")

// LoadConfig is the central function to load the app configuration.
func LoadConfig() (*config.Config, error) {
	return config.Load(*configFile)
}

// NewLogger builds the application logger from the configured level.
func NewLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// NewProvider builds the NAV provider client against the configured
// base URL.
func NewProvider(cfg *config.Config) *mfapi.Client {
	return mfapi.New(mfapi.WithBaseURL(cfg.ProviderBaseURL))
}

// OpenStore connects to the configured mongo database.
func OpenStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	return store.Open(ctx, cfg.MongoURI, cfg.MongoDB)
}
