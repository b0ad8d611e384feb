package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/dpctl/internal/monitor"
)

// View renders the full control surface: one column per channel, the
// text-entry panel while editing, a status line after a failed command,
// and the help line.
func (m Model) View() string {
	panels := make([]string, 0, m.channelCount)
	for ch := 1; ch <= m.channelCount; ch++ {
		panels = append(panels, m.renderChannel(ch))
	}

	sections := []string{lipgloss.JoinHorizontal(lipgloss.Top, panels...)}

	if m.entering {
		sections = append(sections, m.renderEntry())
	}
	if m.status != "" {
		sections = append(sections, StatusErrorStyle.Render("✗ "+m.status))
	}
	sections = append(sections, HelpStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderChannel renders one channel column: the measurement block, the
// setpoint list, and the protection list.
func (m Model) renderChannel(ch int) string {
	state := m.snapshot.Channel(ch)
	chSelected := ch == m.channel && !m.entering

	title := titleStyle(state.Output).Render(fmt.Sprintf("CH%d - %s", ch, onOff(state.Output)))

	measure := m.renderMeasure(ch, state, chSelected)
	set := m.renderSetList(ch, state, chSelected)
	limit := m.renderLimitList(ch, state, chSelected)

	body := lipgloss.JoinVertical(lipgloss.Left, title, measure, "", set, "", limit)
	return panelStyle(ch == m.channel).Render(body)
}

func (m Model) renderMeasure(ch int, state monitor.ChannelState, chSelected bool) string {
	style := MeasureIdleStyle
	if state.Output {
		style = MeasureLiveStyle
	}

	readout := fmt.Sprintf("%7.3f V\n%7.3f A\n%7.3f W",
		state.Measured.Voltage, state.Measured.Current, state.Measured.Power)

	cursor := "  "
	if chSelected && m.field == FieldMeasure {
		cursor = "> "
	}
	lines := strings.Split(style.Render(readout), "\n")
	for i, line := range lines {
		prefix := "  "
		if i == 0 {
			prefix = cursor
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSetList(ch int, state monitor.ChannelState, chSelected bool) string {
	rows := []string{
		fmt.Sprintf("%7.3f V", state.SetVoltage),
		fmt.Sprintf("%7.3f A", state.SetCurrent),
	}

	selectedRow := -1
	if chSelected && (m.field == FieldSetVoltage || m.field == FieldSetCurrent) {
		selectedRow, _ = m.field.ListIndex()
	}
	return "Set\n" + renderRows(rows, selectedRow, nil)
}

func (m Model) renderLimitList(ch int, state monitor.ChannelState, chSelected bool) string {
	rows := []string{
		fmt.Sprintf("%7.3f V", state.OVPLimit),
		fmt.Sprintf("%7.3f A", state.OCPLimit),
		"OVP: " + onOff(state.OVPEnabled),
		"OCP: " + onOff(state.OCPEnabled),
	}

	// Disarmed protection values render dimmed
	dimmed := map[int]bool{
		0: !state.OVPEnabled,
		1: !state.OCPEnabled,
	}

	selectedRow := -1
	if chSelected && (m.field.IsToggle() || m.field == FieldOVPLimit || m.field == FieldOCPLimit) {
		selectedRow, _ = m.field.ListIndex()
	}
	return "Limit\n" + renderRows(rows, selectedRow, dimmed)
}

// renderRows renders list rows with a "> " cursor on the selected one.
func renderRows(rows []string, selected int, dimmed map[int]bool) string {
	out := make([]string, len(rows))
	for i, row := range rows {
		if dimmed[i] {
			row = DimStyle.Render(row)
		}
		prefix := "  "
		if i == selected {
			prefix = "> "
		}
		out[i] = prefix + row
	}
	return strings.Join(out, "\n")
}

// renderEntry renders the text-entry panel.
func (m Model) renderEntry() string {
	style := EntryBoxStyle
	title := m.entryField.EntryTitle()
	if m.entryInvalid {
		style = EntryInvalidStyle
		title += " (not a number)"
	}
	content := EntryTitleStyle.Render(title) + "\n" + m.entry.View()
	return style.Render(content)
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}
