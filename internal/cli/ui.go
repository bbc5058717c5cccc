package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/dungeonforge/pkg/layout"
	"github.com/matzehuels/dungeonforge/pkg/level"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings, doors
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleWall     = lipgloss.NewStyle().Foreground(colorGray)
	styleFloor    = lipgloss.NewStyle().Foreground(colorDim)
	styleDoor     = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleEntrance = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printIssue prints a level validation finding.
func printIssue(i level.Issue) {
	var where string
	switch {
	case i.Graph != "":
		where = StyleDim.Render("graph "+i.Graph) + " "
	case i.Template != "":
		where = StyleDim.Render("template "+i.Template) + " "
	}
	if i.Severity == level.Error {
		printError("%s%s", where, i.Message)
		return
	}
	printWarning("%s%s", where, i.Message)
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints layout statistics on a single line.
func printStats(l *layout.Layout, cached bool) {
	b := l.Bounds()
	parts := []string{
		fmt.Sprintf("graph %s", l.Graph),
		fmt.Sprintf("seed %d", l.Seed),
		fmt.Sprintf("%d rooms", l.Len()),
		fmt.Sprintf("%dx%d", b.Width(), b.Height()),
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line + StyleDim.Render(" · ") + statusStyle.Render(status))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}

// =============================================================================
// Layout Display
// =============================================================================

// styledMap colours a rasterized layout for the terminal.
func styledMap(l *layout.Layout) string {
	m := layout.Rasterize(l)
	var b strings.Builder
	for _, row := range m.Rows {
		line := strings.TrimRight(string(row), " ")
		for _, t := range []byte(line) {
			b.WriteString(styleTile(layout.Tile(t)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func styleTile(t layout.Tile) string {
	s := string(rune(t))
	switch t {
	case layout.TileWall:
		return styleWall.Render(s)
	case layout.TileFloor:
		return styleFloor.Render(s)
	case layout.TileDoor:
		return styleDoor.Render(s)
	case layout.TileEntrance:
		return styleEntrance.Render(s)
	}
	return s
}

// roomTable lists the placed rooms in placement order.
func roomTable(l *layout.Layout) string {
	rows := make([][]string, 0, l.Len())
	for _, r := range l.InOrder() {
		b := r.Bounds()
		rows = append(rows, []string{
			r.ID,
			r.Type,
			r.TemplateID,
			fmt.Sprintf("(%d,%d)", b.Min.X, b.Min.Y),
			fmt.Sprintf("(%d,%d)", b.Max.X, b.Max.Y),
			r.ParentID,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Room", "Type", "Template", "Lower", "Upper", "Parent").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
