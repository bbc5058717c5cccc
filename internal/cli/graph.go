package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/pipeline"
	"github.com/matzehuels/dungeonforge/pkg/roomgraph"
)

// graphCommand creates the graph command, which draws a room node graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		name    string
		output  string
		svg     bool
		showIDs bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "graph [level.toml]",
		Short: "Draw a room node graph as DOT or SVG",
		Long: `Draw a room node graph as DOT or SVG.

Prints Graphviz DOT by default. With --svg the graph is rendered with the
embedded Graphviz and the result is cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], name, output, svg, showIDs, noCache)
		},
	}

	cmd.Flags().StringVarP(&name, "graph", "g", "", "graph to draw (default: first in file)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG instead of DOT")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "show node IDs (DOT only)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, path, name, output string, svg, showIDs, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	lvl, hash, err := runner.Load(pipeline.Options{LevelPath: path})
	if err != nil {
		return err
	}
	if name == "" {
		names := lvl.GraphNames()
		if len(names) == 0 {
			return fmt.Errorf("level %s has no graphs", lvl.Name)
		}
		name = names[0]
	}

	var data []byte
	if svg {
		out, cached, err := runner.GraphSVGWithCacheInfo(ctx, lvl, hash, name)
		if err != nil {
			return fmt.Errorf("render graph %s: %w", name, err)
		}
		c.Logger.Debug("rendered graph", "graph", name, "cached", cached)
		data = out
	} else {
		g, err := lvl.RoomGraph(name)
		if err != nil {
			return err
		}
		data = []byte(roomgraph.ToDOT(g, roomgraph.DOTOptions{Types: lvl.TypeList(), ShowIDs: showIDs}))
	}

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Graph %s written", name)
	printFile(output)
	return nil
}
