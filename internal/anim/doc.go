// Package anim rate-limits animation triggers and invokes the external
// renderer with options taken from the current configuration.
//
// The debouncing policy is leading-edge with trailing coalesce: the
// first trigger after a quiet period fires immediately; further
// triggers inside the window collapse into a single pending invocation
// that fires when the window expires. The effective rate is therefore
// capped at roughly one invocation per window, and rapid bursts are
// never discarded entirely.
package anim
