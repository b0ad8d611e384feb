// Package logging provides structured logging for dpctl.
//
// This package wraps zap with convenience functions for the logging patterns
// used throughout the tool. Logging is silent by default: the interactive
// control surface owns the terminal, so nothing may be written to it unless
// the user asks for it.
//
// # Configuration
//
// Verbosity is controlled by the DPCTL_LOG_LEVEL environment variable
// ("debug", "info", "warn", "error"); when unset, a nop logger is installed.
// DPCTL_LOG_FILE redirects output to a file, which is the only sane place for
// logs while the TUI is running.
//
// # Wire Traffic
//
// LogExchange records individual SCPI exchanges at debug level:
//
//	logging.LogExchange(":MEAS:ALL? CH1", "1.234,0.100,0.123", elapsed, nil)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
