package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// generateCommand creates the generate command, the main entry point for
// building a dungeon from a level file.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		table      bool
		maxBuild   int
		maxRebuild int
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate [level.toml]",
		Short: "Generate a dungeon layout from a level file",
		Long: `Generate a dungeon layout from a level file.

One of the level's room node graphs is picked at random and its rooms are
placed breadth-first from the entrance. Failed placements are retried
according to the level settings, which the --max-* flags override.

Without --output the ASCII map is printed to the terminal. With --output the
requested formats are written to disk: json is the hand-off manifest listing
every room's template, position and doorways, txt is the ASCII map.

A fixed --seed always produces the same dungeon, and results are cached
locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.LevelPath = args[0]
			opts.Formats = parseFormats(formatsStr)
			opts.Config.MaxBuildAttempts = intOverride(cmd, "max-build-attempts", maxBuild)
			opts.Config.MaxRebuildAttempts = intOverride(cmd, "max-rebuild-attempts", maxRebuild)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, output, noCache, table)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): txt (default), json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "regenerate even when a cached layout exists")
	cmd.Flags().BoolVar(&table, "rooms", false, "print a table of placed rooms")

	cmd.Flags().StringVarP(&opts.Graph, "graph", "g", "", "generate from this graph only (default: pick at random)")
	cmd.Flags().Uint64VarP(&opts.Seed, "seed", "s", 0, "random seed (default: random)")
	cmd.Flags().IntVar(&maxBuild, "max-build-attempts", 0, "graph selections before giving up (default: level setting)")
	cmd.Flags().IntVar(&maxRebuild, "max-rebuild-attempts", 0, "rebuilds per selected graph, 0 for a single pass (default: level setting)")

	return cmd
}

// intOverride returns v when the flag called name was given on the command
// line and nil otherwise, so an explicit zero still overrides.
func intOverride(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

// runGenerate executes the pipeline and writes or prints the result.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string, noCache, table bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Placing rooms...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Placed %d rooms", result.Layout.Len()))

	if output == "" {
		if len(opts.Formats) == 1 && opts.Formats[0] == pipeline.FormatJSON {
			_, err := os.Stdout.Write(result.Artifacts[pipeline.FormatJSON])
			return err
		}
		fmt.Print(styledMap(result.Layout))
		if table {
			fmt.Println(roomTable(result.Layout))
		}
		printStats(result.Layout, result.CacheInfo.LayoutHit)
		return nil
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output)
	if err != nil {
		return err
	}

	printSuccess("Dungeon generated")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Layout, result.CacheInfo.LayoutHit)
	if table {
		fmt.Println(roomTable(result.Layout))
	}
	printNewline()
	printNextStep("Reroll interactively", fmt.Sprintf("%s preview %s", appName, opts.LevelPath))
	return nil
}

// writeArtifacts writes each format to disk. A single format is written to
// output as given; several formats share output as a base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	if len(formats) == 1 {
		if err := os.WriteFile(output, artifacts[formats[0]], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", output, err)
		}
		return []string{output}, nil
	}

	base := strings.TrimSuffix(output, filepath.Ext(output))
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		p := base + "." + f
		if err := os.WriteFile(p, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
