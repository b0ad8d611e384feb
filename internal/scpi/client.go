package scpi

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/muurk/dpctl/internal/logging"
)

const (
	// DefaultDialTimeout is the timeout for establishing the TCP connection
	DefaultDialTimeout = 5 * time.Second

	// DefaultReadTimeout is the deadline applied to every response read.
	// The DP800 answers well within this on a healthy link; exceeding it
	// is treated as a timeout, not a hang.
	DefaultReadTimeout = 1 * time.Second
)

// Conn is the transport capability a Client needs: send one line with no
// reply, or send one line and read exactly one reply line. Implementations
// own framing (the trailing newline) so callers deal in bare request text.
//
// The production implementation is a TCP connection; tests substitute a
// deterministic in-memory double.
type Conn interface {
	// Command writes one request line with no expected response.
	Command(text string) error

	// Query writes one request line and reads exactly one newline-terminated
	// response line, returned with the terminator stripped.
	Query(text string) (string, error)

	// Close releases the underlying transport.
	Close() error
}

// netConn is the TCP-backed Conn used against real instruments.
type netConn struct {
	conn        net.Conn
	reader      *bufio.Reader
	writer      *bufio.Writer
	readTimeout time.Duration
}

func (c *netConn) Command(text string) error {
	if _, err := c.writer.WriteString(text + "\n"); err != nil {
		return err
	}
	return c.writer.Flush()
}

func (c *netConn) Query(text string) (string, error) {
	if err := c.Command(text); err != nil {
		return "", err
	}
	if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return "", err
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func (c *netConn) Close() error {
	return c.conn.Close()
}

// Client drives one DP800-series power supply over its SCPI line protocol.
//
// Channels are 1-indexed. Out-of-range channel numbers are forwarded to the
// instrument uninterpreted; the DP800 substitutes the currently selected
// channel for them, which is instrument behavior, not validated here.
//
// The protocol is strictly single-outstanding-request, so a Client has a
// single logical owner at any moment and is not safe for concurrent use.
type Client struct {
	conn Conn
}

// Dial connects to the instrument at address ("host:port") and returns a
// Client with the default read deadline installed.
func Dial(address string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", address, DefaultDialTimeout)
	if err != nil {
		return nil, &OpError{Kind: KindConnect, Err: err}
	}
	return NewClient(&netConn{
		conn:        conn,
		reader:      bufio.NewReader(conn),
		writer:      bufio.NewWriter(conn),
		readTimeout: DefaultReadTimeout,
	}), nil
}

// NewClient wraps an existing transport. Used by Dial and by tests.
func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

// Close releases the connection to the instrument.
func (c *Client) Close() error {
	return c.conn.Close()
}

// command sends a set command that expects no response.
func (c *Client) command(text string) error {
	start := time.Now()
	err := c.conn.Command(text)
	if err != nil {
		err = classifyIOError(text, err)
	}
	logging.LogExchange(text, "", time.Since(start), err)
	return err
}

// query sends a query and returns its single response line.
func (c *Client) query(text string) (string, error) {
	start := time.Now()
	line, err := c.conn.Query(text)
	if err != nil {
		err = classifyIOError(text, err)
	}
	logging.LogExchange(text, line, time.Since(start), err)
	if err != nil {
		return "", err
	}
	return line, nil
}

func (c *Client) queryFloat(text string) (float32, error) {
	line, err := c.query(text)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(line, 32)
	if err != nil {
		return 0, &OpError{Kind: KindParse, Op: text, Err: fmt.Errorf("%q is not numeric", line)}
	}
	return float32(v), nil
}

func (c *Client) queryInt(text string) (int, error) {
	line, err := c.query(text)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, &OpError{Kind: KindParse, Op: text, Err: fmt.Errorf("%q is not an integer", line)}
	}
	return v, nil
}

func (c *Client) queryToggle(text string) (bool, error) {
	line, err := c.query(text)
	if err != nil {
		return false, err
	}
	on, err := parseToggle(line)
	if err != nil {
		return false, &OpError{Kind: KindParse, Op: text, Err: err}
	}
	return on, nil
}

// Identify returns the instrument identification strings.
func (c *Client) Identify() (Identify, error) {
	const op = "*IDN?"
	line, err := c.query(op)
	if err != nil {
		return Identify{}, err
	}
	id, err := ParseIdentify(line)
	if err != nil {
		return Identify{}, &OpError{Kind: KindParse, Op: op, Err: err}
	}
	return id, nil
}

// OutputState reports whether a channel's output is on.
func (c *Client) OutputState(ch int) (bool, error) {
	return c.queryToggle(fmt.Sprintf(":OUTP? CH%d", ch))
}

// SetOutputState switches a channel's output on or off.
func (c *Client) SetOutputState(ch int, on bool) error {
	return c.command(fmt.Sprintf(":OUTP CH%d,%s", ch, formatToggle(on)))
}

// SelectedChannel returns the channel currently selected on the front panel.
func (c *Client) SelectedChannel() (int, error) {
	return c.queryInt(":INST:NSEL?")
}

// SelectChannel selects a channel on the front panel.
func (c *Client) SelectChannel(ch int) error {
	return c.command(fmt.Sprintf(":INST:NSEL %d", ch))
}

// SetpointCurrent returns a channel's current setpoint in amps.
func (c *Client) SetpointCurrent(ch int) (float32, error) {
	return c.queryFloat(fmt.Sprintf(":SOUR%d:CURR?", ch))
}

// SetSetpointCurrent sets a channel's current setpoint in amps.
func (c *Client) SetSetpointCurrent(ch int, amps float32) error {
	return c.command(fmt.Sprintf(":SOUR%d:CURR %.3f", ch, amps))
}

// SetpointVoltage returns a channel's voltage setpoint in volts.
func (c *Client) SetpointVoltage(ch int) (float32, error) {
	return c.queryFloat(fmt.Sprintf(":SOUR%d:VOLT?", ch))
}

// SetSetpointVoltage sets a channel's voltage setpoint in volts.
func (c *Client) SetSetpointVoltage(ch int, volts float32) error {
	return c.command(fmt.Sprintf(":SOUR%d:VOLT %.3f", ch, volts))
}

// MeasureAll returns one combined voltage/current/power reading for a channel.
func (c *Client) MeasureAll(ch int) (Measurement, error) {
	op := fmt.Sprintf(":MEAS:ALL? CH%d", ch)
	line, err := c.query(op)
	if err != nil {
		return Measurement{}, err
	}
	m, err := ParseMeasurement(line)
	if err != nil {
		return Measurement{}, &OpError{Kind: KindParse, Op: op, Err: err}
	}
	return m, nil
}

// OCPLimit returns a channel's over-current protection value in amps.
func (c *Client) OCPLimit(ch int) (float32, error) {
	return c.queryFloat(fmt.Sprintf(":OUTP:OCP:VAL? CH%d", ch))
}

// SetOCPLimit sets a channel's over-current protection value in amps.
func (c *Client) SetOCPLimit(ch int, amps float32) error {
	return c.command(fmt.Sprintf(":OUTP:OCP:VAL CH%d,%.3f", ch, amps))
}

// OCPEnabled reports whether over-current protection is enabled.
func (c *Client) OCPEnabled(ch int) (bool, error) {
	return c.queryToggle(fmt.Sprintf(":OUTP:OCP:STAT? CH%d", ch))
}

// SetOCPEnabled enables or disables over-current protection.
func (c *Client) SetOCPEnabled(ch int, on bool) error {
	return c.command(fmt.Sprintf(":OUTP:OCP:STAT CH%d,%s", ch, formatToggle(on)))
}

// OVPLimit returns a channel's over-voltage protection value in volts.
func (c *Client) OVPLimit(ch int) (float32, error) {
	return c.queryFloat(fmt.Sprintf(":OUTP:OVP:VAL? CH%d", ch))
}

// SetOVPLimit sets a channel's over-voltage protection value in volts.
func (c *Client) SetOVPLimit(ch int, volts float32) error {
	return c.command(fmt.Sprintf(":OUTP:OVP:VAL CH%d,%.3f", ch, volts))
}

// OVPEnabled reports whether over-voltage protection is enabled.
func (c *Client) OVPEnabled(ch int) (bool, error) {
	return c.queryToggle(fmt.Sprintf(":OUTP:OVP:STAT? CH%d", ch))
}

// SetOVPEnabled enables or disables over-voltage protection.
func (c *Client) SetOVPEnabled(ch int, on bool) error {
	return c.command(fmt.Sprintf(":OUTP:OVP:STAT CH%d,%s", ch, formatToggle(on)))
}
