package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// previewCommand creates the preview command, an interactive reroll loop.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [level.toml]",
		Short: "Reroll dungeons interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.LevelPath = args[0]
			return c.runPreview(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().Uint64VarP(&opts.Seed, "seed", "s", 0, "seed of the first roll (default: random)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	lvl, hash, err := runner.Load(opts)
	if err != nil {
		return err
	}

	// Logging would tear the alt screen.
	opts.Logger = newLogger(io.Discard, LogInfo)

	p := tea.NewProgram(NewPreviewModel(runner, lvl, hash, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
