// Package tui implements the interactive control surface for the power
// supply: one column per channel showing live measurements, setpoints, and
// protection limits, with a cursor-driven selection model.
//
// Arrow keys (or hjkl) move between channels and fields; enter toggles the
// output or a protection flag, or opens numeric text entry for a setpoint
// or limit. The snapshot refreshes once per tick, and every protocol call
// runs synchronously inside the event loop so at most one request is
// outstanding at any time.
package tui
