// Package monitor maintains the per-channel state snapshot that the control
// surface renders.
//
// A Sampler polls every channel of the supply once per tick, issuing the
// fixed sequence measure, output state, setpoints, protection limits and
// flags. A channel's slot in the Snapshot is replaced atomically after all
// of its queries succeed, so the renderer never observes a half-updated
// channel. Timed-out passes are retried up to three times with a fixed
// backoff; exhaustion is fatal to the control loop.
package monitor
