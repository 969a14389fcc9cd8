package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TFMV/ontograph/engine"
	"github.com/TFMV/ontograph/graph"
	"github.com/TFMV/ontograph/render"
)

func layoutCmd() *cobra.Command {
	var (
		feedFormat string
		output     string
		outFormat  string
		maxTicks   int
		selectIDs  []string
	)

	cmd := &cobra.Command{
		Use:   "layout <feed>",
		Short: "Lay out a graph from an event feed and export it",
		Long: "Reads a feed of node, alias and relation events (JSON lines or YAML),\n" +
			"runs the simulation until it settles and writes the result as DOT or JSON.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := newGraph()
			events, err := loadFeed(g, args[0], feedFormat)
			if err != nil {
				return err
			}

			for _, id := range selectIDs {
				n, err := g.GetNode(id)
				if err != nil {
					return err
				}
				g.Select(n)
			}

			simCfg := cfg.Simulation.Engine()
			if cmd.Flags().Changed("ticks") {
				simCfg.MaxTicks = maxTicks
			}
			simCfg.TickInterval = 0

			eng := engine.New(g, simCfg, logger)
			stable, err := eng.Run(cmd.Context())
			if err != nil && !errors.Is(err, cmd.Context().Err()) {
				return fmt.Errorf("physics layout failed: %w", err)
			}

			renderer, err := render.GetRenderer(outFormat)
			if err != nil {
				return err
			}
			snap := eng.Snapshot()

			if _, isDOT := renderer.(*render.DOTRenderer); isDOT && output != "-" {
				if output == "" {
					output = cfg.Export.Path
				}
				if output == "" {
					output = render.DefaultGraphVizFile
				}
				if err := render.SaveGraphViz(snap, output); err != nil {
					return err
				}
				printSummary(g, events, eng.Ticks(), stable, output)
				return nil
			}

			out, err := renderer.Render(snap)
			if err != nil {
				return fmt.Errorf("rendering failed: %w", err)
			}
			logger.Debug("rendered layout", "renderer", renderer.Name(), "bytes", len(out))

			if output == "-" {
				_, err = os.Stdout.Write(out)
				return err
			}
			if output == "" {
				output = "ontology.json"
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}

			printSummary(g, events, eng.Ticks(), stable, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&feedFormat, "feed-format", "", "Feed format: jsonl, yaml (default from extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, - for stdout (default from config)")
	cmd.Flags().StringVarP(&outFormat, "format", "f", "dot", "Output format: dot, json")
	cmd.Flags().IntVar(&maxTicks, "ticks", 0, "Maximum simulation ticks, 0 for unbounded (default from config)")
	cmd.Flags().StringSliceVar(&selectIDs, "select", nil, "Node ids to select before the layout runs")

	return cmd
}

func printSummary(g *graph.Graph, events int, ticks uint64, stable bool, output string) {
	fmt.Println()
	stat("Events", events)
	stat("Nodes", g.NodesCount())
	stat("Edges", g.EdgesCount())
	stat("Ticks", ticks)
	if stable {
		stat("Layout", good.Sprint("stable"))
	} else {
		stat("Layout", warn.Sprint("not settled"))
	}
	fmt.Println()
	fmt.Printf("  %s\n", subtle.Sprintf("Model exported to %s", output))
}
