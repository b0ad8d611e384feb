package monitor

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/muurk/dpctl/internal/scpi"
)

// timeoutError mimics a net.Error produced by an expired read deadline.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return false }

// fakeConn answers queries from a response table. The first
// timeoutsRemaining queries fail with a deadline error, which lets tests
// script "attempt N times out" without real timers.
type fakeConn struct {
	responses         map[string]string
	timeoutsRemaining int
	queries           []string
}

func (c *fakeConn) Command(text string) error {
	c.queries = append(c.queries, text)
	return nil
}

func (c *fakeConn) Query(text string) (string, error) {
	c.queries = append(c.queries, text)
	if c.timeoutsRemaining > 0 {
		c.timeoutsRemaining--
		return "", timeoutError{}
	}
	resp, ok := c.responses[text]
	if !ok {
		return "", fmt.Errorf("no scripted response for %q", text)
	}
	return resp, nil
}

func (c *fakeConn) Close() error { return nil }

// channelResponses builds the full response table for one channel.
func channelResponses(ch int, volts float32) map[string]string {
	return map[string]string{
		fmt.Sprintf(":MEAS:ALL? CH%d", ch):      fmt.Sprintf("%.3f,0.100,0.123", volts),
		fmt.Sprintf(":OUTP? CH%d", ch):          "ON",
		fmt.Sprintf(":SOUR%d:VOLT?", ch):        fmt.Sprintf("%.3f", volts),
		fmt.Sprintf(":SOUR%d:CURR?", ch):        "0.500",
		fmt.Sprintf(":OUTP:OVP:VAL? CH%d", ch):  "6.100",
		fmt.Sprintf(":OUTP:OCP:VAL? CH%d", ch):  "1.200",
		fmt.Sprintf(":OUTP:OVP:STAT? CH%d", ch): "ON",
		fmt.Sprintf(":OUTP:OCP:STAT? CH%d", ch): "OFF",
	}
}

func allChannelResponses(channels int) map[string]string {
	responses := make(map[string]string)
	for ch := 1; ch <= channels; ch++ {
		for k, v := range channelResponses(ch, float32(ch)) {
			responses[k] = v
		}
	}
	return responses
}

func newTestSampler(conn *fakeConn, channels int) *Sampler {
	s := NewSampler(scpi.NewClient(conn), channels)
	s.sleep = func(time.Duration) {}
	return s
}

func TestRefreshPopulatesAllChannels(t *testing.T) {
	conn := &fakeConn{responses: allChannelResponses(3)}
	s := newTestSampler(conn, 3)
	snap := NewSnapshot(3)

	if err := s.Refresh(snap); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	for ch := 1; ch <= 3; ch++ {
		state := snap.Channel(ch)
		if state.SetVoltage != float32(ch) {
			t.Errorf("channel %d SetVoltage = %v, want %v", ch, state.SetVoltage, float32(ch))
		}
		if !state.Output {
			t.Errorf("channel %d Output = false, want true", ch)
		}
		if state.SetCurrent != 0.5 {
			t.Errorf("channel %d SetCurrent = %v, want 0.5", ch, state.SetCurrent)
		}
		if state.OVPLimit != 6.1 || state.OCPLimit != 1.2 {
			t.Errorf("channel %d limits = %v/%v, want 6.1/1.2", ch, state.OVPLimit, state.OCPLimit)
		}
		if !state.OVPEnabled || state.OCPEnabled {
			t.Errorf("channel %d protection flags = %v/%v, want true/false", ch, state.OVPEnabled, state.OCPEnabled)
		}
	}

	// 8 queries per channel, one pass
	if len(conn.queries) != 24 {
		t.Errorf("query count = %d, want 24", len(conn.queries))
	}
}

func TestRefreshQueryOrder(t *testing.T) {
	conn := &fakeConn{responses: allChannelResponses(1)}
	s := newTestSampler(conn, 1)

	if err := s.Refresh(NewSnapshot(1)); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	want := []string{
		":MEAS:ALL? CH1",
		":OUTP? CH1",
		":SOUR1:VOLT?",
		":SOUR1:CURR?",
		":OUTP:OVP:VAL? CH1",
		":OUTP:OCP:VAL? CH1",
		":OUTP:OVP:STAT? CH1",
		":OUTP:OCP:STAT? CH1",
	}
	if len(conn.queries) != len(want) {
		t.Fatalf("query count = %d, want %d", len(conn.queries), len(want))
	}
	for i, q := range want {
		if conn.queries[i] != q {
			t.Errorf("query %d = %q, want %q", i, conn.queries[i], q)
		}
	}
}

func TestRefreshRetriesThroughTimeouts(t *testing.T) {
	// Attempts 1 and 2 each lose their first query to a timeout; attempt 3
	// runs clean.
	conn := &fakeConn{
		responses:         allChannelResponses(3),
		timeoutsRemaining: 2,
	}
	s := newTestSampler(conn, 3)

	var slept int
	s.sleep = func(d time.Duration) {
		slept++
		if d != retryBackoff {
			t.Errorf("backoff = %v, want %v", d, retryBackoff)
		}
	}

	snap := NewSnapshot(3)
	if err := s.Refresh(snap); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if slept != 2 {
		t.Errorf("backoff sleeps = %d, want 2", slept)
	}
	if got := snap.Channel(2).SetVoltage; got != 2 {
		t.Errorf("channel 2 SetVoltage = %v, want 2 after successful retry", got)
	}
}

func TestRefreshFatalAfterExhaustedRetries(t *testing.T) {
	conn := &fakeConn{
		responses:         allChannelResponses(3),
		timeoutsRemaining: 100,
	}
	s := newTestSampler(conn, 3)

	snap := NewSnapshot(3)
	seed := ChannelState{SetVoltage: 9.5, Output: true}
	snap.setChannel(1, seed)

	err := s.Refresh(snap)
	if err == nil {
		t.Fatal("Refresh() error = nil, want fatal timeout")
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("error %q should mention exhausted attempts", err)
	}
	if !scpi.IsTimeout(err) {
		t.Errorf("IsTimeout(%v) = false, want true", err)
	}

	// Every attempt died on its first query, so nothing was committed.
	if snap.Channel(1) != seed {
		t.Errorf("channel 1 = %+v, want pre-tick value %+v", snap.Channel(1), seed)
	}
	if len(conn.queries) != 3 {
		t.Errorf("query count = %d, want 3 (one per attempt)", len(conn.queries))
	}
}

func TestRefreshDoesNotRetryNonTimeouts(t *testing.T) {
	responses := allChannelResponses(1)
	responses[":OUTP? CH1"] = "MAYBE" // parse failure, not a timeout
	conn := &fakeConn{responses: responses}
	s := newTestSampler(conn, 1)

	var slept int
	s.sleep = func(time.Duration) { slept++ }

	err := s.Refresh(NewSnapshot(1))
	if err == nil {
		t.Fatal("Refresh() error = nil, want parse error")
	}
	if !scpi.IsParse(err) {
		t.Errorf("IsParse(%v) = false, want true", err)
	}
	if slept != 0 {
		t.Errorf("backoff sleeps = %d, want 0 for non-timeout errors", slept)
	}
	if len(conn.queries) != 2 {
		t.Errorf("query count = %d, want 2 (no retry)", len(conn.queries))
	}
}

func TestRefreshCommitsPerChannel(t *testing.T) {
	// Channel 1 samples fine; channel 2 dies mid-channel on a parse error.
	// Channel 1 keeps its fresh values, channels 2 and 3 their old ones.
	responses := allChannelResponses(3)
	responses[":SOUR2:CURR?"] = "garbage"
	conn := &fakeConn{responses: responses}
	s := newTestSampler(conn, 3)

	snap := NewSnapshot(3)
	old2 := ChannelState{SetVoltage: 7.5}
	old3 := ChannelState{SetVoltage: 8.5}
	snap.setChannel(2, old2)
	snap.setChannel(3, old3)

	err := s.Refresh(snap)
	if err == nil {
		t.Fatal("Refresh() error = nil, want parse error")
	}
	if !strings.Contains(err.Error(), "channel 2") {
		t.Errorf("error %q should name the failing channel", err)
	}

	if got := snap.Channel(1).SetVoltage; got != 1 {
		t.Errorf("channel 1 SetVoltage = %v, want fresh value 1", got)
	}
	if snap.Channel(2) != old2 {
		t.Errorf("channel 2 = %+v, want untouched %+v", snap.Channel(2), old2)
	}
	if snap.Channel(3) != old3 {
		t.Errorf("channel 3 = %+v, want untouched %+v", snap.Channel(3), old3)
	}
}

func TestNewSnapshotZeroed(t *testing.T) {
	snap := NewSnapshot(3)
	if snap.ChannelCount() != 3 {
		t.Fatalf("ChannelCount() = %d, want 3", snap.ChannelCount())
	}
	for ch := 1; ch <= 3; ch++ {
		if snap.Channel(ch) != (ChannelState{}) {
			t.Errorf("channel %d not zero-valued at startup", ch)
		}
	}
}
