// Package evdevinput provides a global pointer-button event source
// backed by Linux evdev devices.
//
// The source opens every readable non-virtual pointer device, runs one
// read goroutine per device, and translates BTN_LEFT/BTN_MIDDLE/
// BTN_RIGHT press events into click events. Coordinates come from an
// optional position query, since evdev reports relative motion only.
package evdevinput
