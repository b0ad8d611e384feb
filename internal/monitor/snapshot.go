package monitor

import "github.com/muurk/dpctl/internal/scpi"

// ChannelState is the full observable state of one output channel.
// Values are immutable once sampled; the sampler replaces whole slots.
type ChannelState struct {
	// Output reports whether the channel output is switched on
	Output bool
	// Measured is the last combined voltage/current/power reading
	Measured scpi.Measurement
	// SetVoltage is the commanded voltage setpoint in volts
	SetVoltage float32
	// SetCurrent is the commanded current setpoint in amps
	SetCurrent float32
	// OVPLimit is the over-voltage protection threshold in volts
	OVPLimit float32
	// OCPLimit is the over-current protection threshold in amps
	OCPLimit float32
	// OVPEnabled reports whether over-voltage protection is armed
	OVPEnabled bool
	// OCPEnabled reports whether over-current protection is armed
	OCPEnabled bool
}

// Snapshot holds the most recently sampled state of every channel, in
// channel order. It is owned by the control loop and mutated only by the
// sampler; the renderer receives it read-only.
type Snapshot struct {
	channels []ChannelState
}

// NewSnapshot creates a zero-valued snapshot for the given channel count.
func NewSnapshot(channelCount int) *Snapshot {
	return &Snapshot{channels: make([]ChannelState, channelCount)}
}

// ChannelCount returns the number of channels in the snapshot.
func (s *Snapshot) ChannelCount() int {
	return len(s.channels)
}

// Channel returns the state of a channel. Channels are 1-indexed to match
// the instrument's numbering.
func (s *Snapshot) Channel(ch int) ChannelState {
	return s.channels[ch-1]
}

// setChannel replaces one channel slot. Only the sampler calls this, and
// only with a fully populated state.
func (s *Snapshot) setChannel(ch int, state ChannelState) {
	s.channels[ch-1] = state
}
