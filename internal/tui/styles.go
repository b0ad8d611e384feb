package tui

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	// MinTerminalWidth is the narrowest terminal the three channel panels
	// fit in
	MinTerminalWidth = 66

	// channelPanelWidth is the inner width of one channel column
	channelPanelWidth = 18
)

// Color palette
var (
	OutputOnColor  = lipgloss.Color("#43BF6D") // Green
	SelectedColor  = lipgloss.Color("#FFFFFF") // White
	InactiveColor  = lipgloss.Color("#626262") // Gray
	EntryColor     = lipgloss.Color("#FFD866") // Yellow
	ErrorColor     = lipgloss.Color("#FF5555") // Red
	SubtleColor    = lipgloss.Color("#626262") // Gray
	HighlightColor = lipgloss.Color("#FFFFFF") // White
)

// Common styles
var (
	// Panel border for the channel column holding the selection cursor
	SelectedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(SelectedColor).
				Width(channelPanelWidth).
				Padding(0, 1)

	// Panel border for unselected channel columns
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(InactiveColor).
			Width(channelPanelWidth).
			Padding(0, 1)

	// Channel title when the output is on
	TitleOnStyle = lipgloss.NewStyle().
			Foreground(OutputOnColor).
			Bold(true)

	// Channel title when the output is off
	TitleOffStyle = lipgloss.NewStyle().
			Bold(true)

	// Measurement readout for a live output
	MeasureLiveStyle = lipgloss.NewStyle().
				Foreground(HighlightColor).
				Bold(true)

	// Measurement readout for a switched-off output
	MeasureIdleStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Bold(true)

	// Rows of disarmed protections
	DimStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Border around the text-entry panel
	EntryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(EntryColor).
			Padding(0, 1)

	// Entry panel border once the buffer failed to parse
	EntryInvalidStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ErrorColor).
				Padding(0, 1)

	// Entry panel title
	EntryTitleStyle = lipgloss.NewStyle().
			Foreground(HighlightColor).
			Bold(true)

	// Status line for failed interactive commands
	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	// Help line
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// panelStyle returns the border style for a channel column.
func panelStyle(selected bool) lipgloss.Style {
	if selected {
		return SelectedPanelStyle
	}
	return PanelStyle
}

// titleStyle returns the channel title style for an output state.
func titleStyle(outputOn bool) lipgloss.Style {
	if outputOn {
		return TitleOnStyle
	}
	return TitleOffStyle
}
