package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/TFMV/ontograph/engine"
	"github.com/TFMV/ontograph/server"
)

// defaultServeInterval paces the simulation when the config leaves ticks unpaced.
const defaultServeInterval = 40 * time.Millisecond

func serveCmd() *cobra.Command {
	var (
		port       int
		feedFormat string
	)

	cmd := &cobra.Command{
		Use:   "serve [feed]",
		Short: "Run the simulation continuously behind an HTTP API",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := newGraph()
			if len(args) == 1 {
				if _, err := loadFeed(g, args[0], feedFormat); err != nil {
					return err
				}
			}

			simCfg := cfg.Simulation.Engine()
			simCfg.MaxTicks = 0
			simCfg.StabilizationThreshold = 0
			if simCfg.TickInterval == 0 {
				simCfg.TickInterval = defaultServeInterval
			}
			eng := engine.New(g, simCfg, logger)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			simErr := make(chan error, 1)
			go func() {
				_, err := eng.Run(ctx)
				simErr <- err
				cancel()
			}()

			if !cmd.Flags().Changed("port") {
				port = cfg.Server.Port
			}
			if err := server.New(eng, logger).Start(ctx, port); err != nil {
				return err
			}

			if err := <-simErr; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port for the HTTP API (default from config)")
	cmd.Flags().StringVar(&feedFormat, "feed-format", "", "Feed format: jsonl, yaml (default from extension)")

	return cmd
}
