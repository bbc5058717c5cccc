package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/dungeonforge/pkg/layout"
	"github.com/matzehuels/dungeonforge/pkg/level"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

var (
	previewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	previewMapStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// PreviewModel - Interactive dungeon reroll
// =============================================================================

// generatedMsg carries the result of one generation back to the model.
type generatedMsg struct {
	layout *layout.Layout
	cached bool
	err    error
}

// PreviewModel is the bubbletea model for "dungeonforge preview". Each
// reroll generates the level again with a fresh seed.
type PreviewModel struct {
	Runner *pipeline.Runner
	Level  *level.Level
	Hash   string
	Opts   pipeline.Options

	// Graph index into Graphs; -1 lets the builder pick.
	Graph  int
	Graphs []string

	Layout  *layout.Layout
	Cached  bool
	Err     error
	Rolls   int
	Working bool

	seeds func() uint64
}

// NewPreviewModel creates a preview model for lvl.
func NewPreviewModel(runner *pipeline.Runner, lvl *level.Level, hash string, opts pipeline.Options) PreviewModel {
	return PreviewModel{
		Runner: runner,
		Level:  lvl,
		Hash:   hash,
		Opts:   opts,
		Graph:  -1,
		Graphs: lvl.GraphNames(),
		seeds:  rand.Uint64,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return m.generate(m.Opts.Seed)
}

// generate returns a command that builds the level with seed. A zero seed
// draws a new one.
func (m PreviewModel) generate(seed uint64) tea.Cmd {
	opts := m.Opts
	if seed == 0 {
		seed = m.seeds()
	}
	opts.Seed = seed
	if m.Graph >= 0 {
		opts.Graph = m.Graphs[m.Graph]
	}
	return func() tea.Msg {
		l, cached, err := m.Runner.GenerateWithCacheInfo(context.Background(), m.Level, m.Hash, opts)
		return generatedMsg{layout: l, cached: cached, err: err}
	}
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.Working = false
		m.Rolls++
		m.Layout, m.Cached, m.Err = msg.layout, msg.cached, msg.err
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r", " ":
			if m.Working {
				return m, nil
			}
			m.Working = true
			return m, m.generate(0)
		case "g":
			if m.Working || len(m.Graphs) == 0 {
				return m, nil
			}
			m.Graph++
			if m.Graph >= len(m.Graphs) {
				m.Graph = -1
			}
			m.Working = true
			return m, m.generate(0)
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Level " + m.Level.Name))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("r reroll  g cycle graph  q quit"))
	b.WriteString("\n\n")

	graph := "any"
	if m.Graph >= 0 {
		graph = m.Graphs[m.Graph]
	}

	switch {
	case m.Err != nil:
		b.WriteString(previewErrorStyle.Render(m.Err.Error()))
		b.WriteString("\n")
	case m.Layout == nil:
		b.WriteString(StyleDim.Render("generating..."))
		b.WriteString("\n")
	default:
		b.WriteString(previewMapStyle.Render(strings.TrimRight(styledMap(m.Layout), "\n")))
		b.WriteString("\n")
		status := iconFresh
		if m.Cached {
			status = iconCached
		}
		b.WriteString(StyleDim.Render(fmt.Sprintf("  graph %s (%s) · seed %d · %d rooms · roll %d · %s",
			m.Layout.Graph, graph, m.Layout.Seed, m.Layout.Len(), m.Rolls, status)))
		b.WriteString("\n")
	}

	return b.String()
}
