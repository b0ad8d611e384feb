package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/muurk/dpctl/internal/config"
	"github.com/muurk/dpctl/internal/scpi"
)

// Run drives the interactive control surface over an already-connected
// client and blocks until the user quits or sampling fails fatally. The
// terminal is restored before any error is returned.
func Run(client *scpi.Client, settings *config.Settings) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width < MinTerminalWidth {
		return fmt.Errorf("terminal too narrow: need %d columns, have %d", MinTerminalWidth, width)
	}

	m := NewModel(client, settings)

	// Populate the snapshot before the first frame renders
	if err := m.sampler.Refresh(m.snapshot); err != nil {
		return err
	}

	// Start on the channel the front panel has selected
	ch, err := client.SelectedChannel()
	if err != nil {
		return err
	}
	if ch >= 1 && ch <= m.channelCount {
		m.channel = ch
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
