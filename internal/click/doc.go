// Package click receives raw pointer-button events from a host-provided
// source and dispatches them to per-button handlers.
//
// The dispatcher is a two-state machine: inactive (no listener registered
// on the source) and active (listener registered). Activation always
// deregisters any previous listener first, so repeated activation is an
// idempotent reset.
package click
