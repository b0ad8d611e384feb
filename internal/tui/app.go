package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/dpctl/internal/config"
	"github.com/muurk/dpctl/internal/monitor"
	"github.com/muurk/dpctl/internal/scpi"
)

const (
	// entryCharLimit caps the text-entry buffer
	entryCharLimit = 16

	// settleDelay is held after a channel-select command; switching
	// channels too quickly makes the supply report invalid commands
	settleDelay = 50 * time.Millisecond
)

// tickMsg fires once per refresh interval.
type tickMsg time.Time

// keyMap defines the control surface key bindings
type keyMap struct {
	ChannelPrev key.Binding
	ChannelNext key.Binding
	FieldPrev   key.Binding
	FieldNext   key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ChannelNext, k.FieldNext, k.Confirm, k.Cancel, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ChannelPrev, k.ChannelNext, k.FieldPrev, k.FieldNext},
		{k.Confirm, k.Cancel, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		ChannelPrev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev channel"),
		),
		ChannelNext: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next channel"),
		),
		FieldPrev: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		FieldNext: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "discard input"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the interactive control surface. It owns the client for the
// duration of the session: every protocol call, sampling included, runs
// synchronously inside Update, so at most one request is ever outstanding.
type Model struct {
	client   *scpi.Client
	sampler  *monitor.Sampler
	snapshot *monitor.Snapshot

	channelCount int
	tick         time.Duration

	// Selection
	channel int // 1-indexed channel cursor
	field   Field

	// Text entry sub-mode
	entering     bool
	entryField   Field
	entry        textinput.Model
	entryInvalid bool

	// status holds the last failed interactive command, cleared by the
	// next successful one
	status string

	// fatalErr is set when sampling exhausts its retries; Run reports it
	// after the terminal is restored
	fatalErr error

	width  int
	height int

	help help.Model
	keys keyMap

	// settle is swapped out by tests to avoid real waits
	settle func(time.Duration)
}

// NewModel creates the control surface for an already-connected client.
func NewModel(client *scpi.Client, settings *config.Settings) Model {
	entry := textinput.New()
	entry.CharLimit = entryCharLimit
	entry.Prompt = "> "
	entry.Placeholder = "0.000"
	entry.Width = 24

	return Model{
		client:       client,
		sampler:      monitor.NewSampler(client, settings.Channels),
		snapshot:     monitor.NewSnapshot(settings.Channels),
		channelCount: settings.Channels,
		tick:         settings.TickInterval(),
		channel:      1,
		field:        FieldMeasure,
		entry:        entry,
		help:         help.New(),
		keys:         newKeyMap(),
		settle:       time.Sleep,
	}
}

// Err returns the fatal sampling error, if any, once the program has quit.
func (m Model) Err() error {
	return m.fatalErr
}

// Init schedules the first refresh tick.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// The refresh (retries included) runs to completion before the
		// next tick is scheduled, so passes never overlap.
		if err := m.sampler.Refresh(m.snapshot); err != nil {
			m.fatalErr = err
			return m, tea.Quit
		}
		return m, m.tickCmd()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.entering {
			return m.updateEntry(msg)
		}
		return m.updateNavigation(msg)
	}

	return m, nil
}

// updateNavigation handles input while no text entry is open.
func (m Model) updateNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ChannelNext):
		m.changeChannel(1)

	case key.Matches(msg, m.keys.ChannelPrev):
		m.changeChannel(-1)

	case key.Matches(msg, m.keys.FieldNext):
		m.field = m.field.Next()

	case key.Matches(msg, m.keys.FieldPrev):
		m.field = m.field.Prev()

	case key.Matches(msg, m.keys.Confirm):
		return m.confirmSelection()
	}

	return m, nil
}

// changeChannel moves the channel cursor with wraparound and selects the
// channel on the instrument's front panel.
func (m *Model) changeChannel(delta int) {
	ch := m.channel + delta
	if ch > m.channelCount {
		ch = 1
	}
	if ch < 1 {
		ch = m.channelCount
	}
	m.channel = ch

	if err := m.client.SelectChannel(ch); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""

	// Switching channels too quickly can desynchronize the supply's
	// command context.
	m.settle(settleDelay)
}

// confirmSelection acts on the focused field: toggle the output or a
// protection flag, or open text entry for a numeric field.
func (m Model) confirmSelection() (tea.Model, tea.Cmd) {
	state := m.snapshot.Channel(m.channel)

	switch {
	case m.field == FieldMeasure:
		m.report(m.client.SetOutputState(m.channel, !state.Output))

	case m.field == FieldOVPEnabled:
		m.report(m.client.SetOVPEnabled(m.channel, !state.OVPEnabled))

	case m.field == FieldOCPEnabled:
		m.report(m.client.SetOCPEnabled(m.channel, !state.OCPEnabled))

	case m.field.Editable():
		m.entering = true
		m.entryField = m.field
		m.entryInvalid = false
		m.entry.SetValue("")
		m.entry.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

// updateEntry handles input while the text-entry panel is open.
func (m Model) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		// Discard the buffer, no protocol call
		m.closeEntry()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		// The character filter admits buffers that are not numbers (empty,
		// a lone "."); refuse to leave entry instead of crashing on them.
		value, err := strconv.ParseFloat(m.entry.Value(), 32)
		if err != nil {
			m.entryInvalid = true
			return m, nil
		}
		m.dispatchEntry(float32(value))
		m.closeEntry()
		return m, nil
	}

	if !allowedEntryKey(msg) {
		return m, nil
	}
	var cmd tea.Cmd
	m.entry, cmd = m.entry.Update(msg)
	m.entryInvalid = false
	return m, cmd
}

// allowedEntryKey admits digits, the decimal point, and backspace.
func allowedEntryKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace:
		return true
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if r != '.' && (r < '0' || r > '9') {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// dispatchEntry sends the confirmed value to the field being edited.
func (m *Model) dispatchEntry(value float32) {
	var err error
	switch m.entryField {
	case FieldSetVoltage:
		err = m.client.SetSetpointVoltage(m.channel, value)
	case FieldSetCurrent:
		err = m.client.SetSetpointCurrent(m.channel, value)
	case FieldOVPLimit:
		err = m.client.SetOVPLimit(m.channel, value)
	case FieldOCPLimit:
		err = m.client.SetOCPLimit(m.channel, value)
	}
	m.report(err)
}

// closeEntry clears the buffer and returns to navigation.
func (m *Model) closeEntry() {
	m.entering = false
	m.entryInvalid = false
	m.entry.SetValue("")
	m.entry.Blur()
}

// report records an interactive command failure for the status line. The
// snapshot is left alone; the next sampling pass reflects whatever the
// instrument actually did.
func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}
