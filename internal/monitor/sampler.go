package monitor

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/dpctl/internal/logging"
	"github.com/muurk/dpctl/internal/scpi"
)

const (
	// maxAttempts is the total number of sampling attempts before a pass
	// is declared fatal
	maxAttempts = 3

	// retryBackoff is the fixed pause between attempts after a timeout
	retryBackoff = 250 * time.Millisecond
)

// fieldStep is one query in the per-channel refresh sequence: a name for
// error context and a fetch that applies the result to the state under
// construction.
type fieldStep struct {
	name  string
	fetch func(c *scpi.Client, ch int, into *ChannelState) error
}

// channelSteps is the fixed refresh order for one channel. Modeled as an
// explicit list so tests can script the exact sequence of responses and so
// the all-or-nothing commit below stays obvious.
var channelSteps = []fieldStep{
	{"measure", func(c *scpi.Client, ch int, into *ChannelState) error {
		m, err := c.MeasureAll(ch)
		into.Measured = m
		return err
	}},
	{"output state", func(c *scpi.Client, ch int, into *ChannelState) error {
		on, err := c.OutputState(ch)
		into.Output = on
		return err
	}},
	{"voltage setpoint", func(c *scpi.Client, ch int, into *ChannelState) error {
		v, err := c.SetpointVoltage(ch)
		into.SetVoltage = v
		return err
	}},
	{"current setpoint", func(c *scpi.Client, ch int, into *ChannelState) error {
		v, err := c.SetpointCurrent(ch)
		into.SetCurrent = v
		return err
	}},
	{"ovp limit", func(c *scpi.Client, ch int, into *ChannelState) error {
		v, err := c.OVPLimit(ch)
		into.OVPLimit = v
		return err
	}},
	{"ocp limit", func(c *scpi.Client, ch int, into *ChannelState) error {
		v, err := c.OCPLimit(ch)
		into.OCPLimit = v
		return err
	}},
	{"ovp enabled", func(c *scpi.Client, ch int, into *ChannelState) error {
		on, err := c.OVPEnabled(ch)
		into.OVPEnabled = on
		return err
	}},
	{"ocp enabled", func(c *scpi.Client, ch int, into *ChannelState) error {
		on, err := c.OCPEnabled(ch)
		into.OCPEnabled = on
		return err
	}},
}

// Sampler keeps a Snapshot fresh by polling every channel's state over one
// scpi.Client. It tolerates transient timeouts with a bounded retry and
// never leaves a partially updated channel visible.
//
// A Sampler shares its client with the rest of the control loop, so at most
// one Refresh (including its retries) may be active at a time; the caller
// must not start the next pass before the current one returns.
type Sampler struct {
	client       *scpi.Client
	channelCount int

	// sleep is swapped out by tests to avoid real backoff waits
	sleep func(time.Duration)
}

// NewSampler creates a sampler refreshing the given number of channels.
func NewSampler(client *scpi.Client, channelCount int) *Sampler {
	return &Sampler{
		client:       client,
		channelCount: channelCount,
		sleep:        time.Sleep,
	}
}

// refreshOnce runs a single full sampling pass. Each channel's slot is
// replaced only after all of its queries succeed; a failure partway through
// a channel discards that channel's partial result and fails the pass.
func (s *Sampler) refreshOnce(snap *Snapshot) error {
	for ch := 1; ch <= s.channelCount; ch++ {
		var next ChannelState
		for _, step := range channelSteps {
			if err := step.fetch(s.client, ch, &next); err != nil {
				return fmt.Errorf("sampling channel %d %s: %w", ch, step.name, err)
			}
		}
		snap.setChannel(ch, next)
	}
	return nil
}

// Refresh runs one sampling pass under the retry policy: a timed-out pass
// is retried after a fixed backoff, up to 3 total attempts. Exhausting the
// attempts, or hitting any non-timeout error, is fatal and propagates to
// the caller. Channels committed before the failure keep their new values;
// the rest keep their previous ones.
func (s *Sampler) Refresh(snap *Snapshot) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			s.sleep(retryBackoff)
		}

		err := s.refreshOnce(snap)
		if err == nil {
			return nil
		}
		if !scpi.IsTimeout(err) {
			return err
		}

		lastErr = err
		if attempt < maxAttempts {
			logging.Warn("Sample timeout, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", maxAttempts),
			)
		}
	}
	return fmt.Errorf("sample timeout after %d attempts: %w", maxAttempts, lastErr)
}
