package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#7C3AED")
	accentColor  = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	textColor    = lipgloss.Color("#F3F4F6")
	nullColor    = lipgloss.Color("#4B5563")

	// Cell/header styles carry no Padding: grid.go pads every cell to
	// its sampled column width plus a one-space gap itself, so the
	// rendered width matches the budget ColumnRenderOrder computed
	// (ColumnWidth+1 per column). Adding lipgloss padding on top would
	// make cells wider than that budget accounted for.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(lipgloss.Color("#1F2937"))

	PinnedHeaderStyle = HeaderStyle.Foreground(accentColor)

	CellStyle = lipgloss.NewStyle()

	SelectedCellStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Background(primaryColor).
				Bold(true)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#374151"))

	NullCellStyle = lipgloss.NewStyle().
			Foreground(nullColor).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.Color("#1F2937")).
			Padding(0, 1)

	ErrorStatusStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Bold(true)

	WarningStatusStyle = lipgloss.NewStyle().
				Foreground(accentColor)

	CommandBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	OverlayBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(1, 2)

	DiffAddStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	DiffDelStyle = lipgloss.NewStyle().Foreground(errorColor)
)

// RenderHelp lays out key/description pairs the way the overlay Help
// mode presents the active keymap, wrapping at width.
func RenderHelp(width int, keys ...string) string {
	if width < 20 {
		width = 20
	}

	var lines []string
	var currentLine string
	const separator = "  "

	for i := 0; i < len(keys); i += 2 {
		key := keys[i]
		desc := ""
		if i+1 < len(keys) {
			desc = keys[i+1]
		}
		itemText := key + " " + desc

		if currentLine != "" && len(currentLine)/2+len(separator)+len(itemText) > width-4 {
			lines = append(lines, currentLine)
			currentLine = HelpKeyStyle.Render(key) + " " + desc
			continue
		}
		if currentLine != "" {
			currentLine += separator
		}
		currentLine += HelpKeyStyle.Render(key) + " " + desc
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	result := ""
	for i, line := range lines {
		if i > 0 {
			result += "\n"
		}
		result += line
	}
	return HelpStyle.Render(result)
}
