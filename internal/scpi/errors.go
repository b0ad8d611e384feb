package scpi

import (
	"errors"
	"fmt"
	"net"
	"os"
)

// Kind categorizes a failed instrument operation.
type Kind int

const (
	// KindConnect indicates the instrument was unreachable at dial time
	KindConnect Kind = iota
	// KindIO indicates a write or read failure on an established connection
	KindIO
	// KindTimeout indicates the read deadline elapsed before a full
	// response line arrived
	KindTimeout
	// KindParse indicates the response did not match the expected field
	// count or type
	KindParse
)

// String returns a human-readable name for the error kind
func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "connect error"
	case KindIO:
		return "i/o error"
	case KindTimeout:
		return "timeout"
	case KindParse:
		return "parse error"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// OpError records a failed exchange with the instrument: what kind of
// failure, the request that triggered it, and the underlying cause.
type OpError struct {
	Kind Kind
	// Op is the SCPI request text, e.g. ":MEAS:ALL? CH1"
	Op  string
	Err error
}

// Error implements the error interface
func (e *OpError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is (or wraps) a read-deadline timeout.
func IsTimeout(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == KindTimeout
	}
	return false
}

// IsParse reports whether err is (or wraps) a response parse failure.
func IsParse(err error) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == KindParse
	}
	return false
}

// classifyIOError wraps a transport error, distinguishing deadline
// expiry from other I/O failures.
func classifyIOError(op string, err error) *OpError {
	kind := KindIO
	var nerr net.Error
	if errors.Is(err, os.ErrDeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		kind = KindTimeout
	}
	return &OpError{Kind: kind, Op: op, Err: err}
}
