// Package scpi implements the SCPI line protocol client for Rigol
// DP800-series bench power supplies.
//
// The instrument speaks plain-text commands over a TCP stream, one command
// or query per line, terminated by '\n'. Queries end with '?' and answer
// with exactly one newline-terminated line.
//
// # Command Set
//
// The supported operations map directly onto the DP800 programming guide:
//
//	*IDN?                               MANUFACTURER,MODEL,SERIAL,VERSION
//	:OUTP? CH<n>   / :OUTP CH<n>,ON     output state
//	:INST:NSEL?    / :INST:NSEL <n>     selected channel
//	:SOUR<n>:CURR? / :SOUR<n>:CURR <x>  current setpoint
//	:SOUR<n>:VOLT? / :SOUR<n>:VOLT <x>  voltage setpoint
//	:MEAS:ALL? CH<n>                    V,A,W combined reading
//	:OUTP:OCP:VAL  / :OUTP:OCP:STAT     over-current protection
//	:OUTP:OVP:VAL  / :OUTP:OVP:STAT     over-voltage protection
//
// Numeric values sent to the instrument are formatted with exactly three
// decimal digits; this precision is part of the wire contract.
//
// # Timeouts
//
// Every response read runs under a fixed deadline. A timed-out query is
// abandoned at the logical level (the caller gets a timeout-kind OpError)
// but the connection is assumed still usable for the next request; a dead
// link simply keeps timing out until the caller gives up.
//
// # Error Handling
//
// All failures are reported as *OpError with a Kind of connect, i/o,
// timeout, or parse, carrying the request text that triggered them. Use
// IsTimeout and IsParse for classification.
//
// # Concurrency
//
// The protocol is strictly single-outstanding-request. A Client has one
// logical owner at a time and performs no internal locking.
package scpi
