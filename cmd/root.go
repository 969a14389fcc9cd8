// Package cmd implements the ontograph command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TFMV/ontograph/config"
	"github.com/TFMV/ontograph/graph"
	"github.com/TFMV/ontograph/ingest"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "ontograph",
	Short:         "Force-directed layout for ontology graphs",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		logger = cfg.Log.Logger(os.Stderr)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		layoutCmd(),
		serveCmd(),
		configCmd(),
	)
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		bad.Fprintf(os.Stderr, "ontograph: %v\n", err)
	}
	return err
}

// newGraph builds an empty graph from the loaded configuration.
func newGraph() *graph.Graph {
	rng := cfg.Placement.Rand()
	return graph.New(
		graph.WithParams(cfg.Physics.Params()),
		graph.WithRand(rng),
		graph.WithPlacer(cfg.Placement.Placer(rng)),
		graph.WithLogger(logger),
	)
}

// loadFeed applies the events of the feed file at path to g. An empty format
// is taken from the file extension.
func loadFeed(g *graph.Graph, path, format string) (int, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	proc, err := ingest.GetProcessor(format)
	if err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open feed: %w", err)
	}
	defer f.Close()

	n, err := proc.Process(f, g)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("feed loaded", "path", path, "processor", proc.GetName(), "events", n)
	return n, nil
}
