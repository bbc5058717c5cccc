package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/level"
)

// validateCommand creates the validate command, which lints a level file.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		asJSON      bool
		maxCorridor int
	)

	cmd := &cobra.Command{
		Use:   "validate [level.toml]",
		Short: "Check a level file for authoring errors",
		Long: `Check a level file for authoring errors.

Reports templates with bad bounds or doorways, missing entrance or corridor
templates, graphs that break the linking rules and room types no template
provides. Exits non-zero when any error is found.

Corridor fan-out is checked against the level's max_child_corridors setting
unless --max-child-corridors is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0], asJSON, intOverride(cmd, "max-child-corridors", maxCorridor))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print issues as JSON")
	cmd.Flags().IntVar(&maxCorridor, "max-child-corridors", 0, "corridors allowed off one room (default: level setting)")

	return cmd
}

func (c *CLI) runValidate(path string, asJSON bool, maxCorridors *int) error {
	l, err := level.Load(path)
	if err != nil {
		return err
	}
	if maxCorridors != nil {
		l.Settings.MaxChildCorridors = maxCorridors
	}
	issues := level.Validate(l)
	c.Logger.Debug("validated level", "level", l.Name, "issues", len(issues))

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if issues == nil {
			issues = []level.Issue{}
		}
		if err := enc.Encode(issues); err != nil {
			return err
		}
	} else {
		for _, i := range issues {
			printIssue(i)
		}
		if len(issues) == 0 {
			printSuccess("Level %s is valid", l.Name)
			printDetail("%d templates · %d graphs", len(l.Templates), len(l.Graphs))
		}
	}

	if level.HasErrors(issues) {
		return fmt.Errorf("level %s has errors", l.Name)
	}
	return nil
}
