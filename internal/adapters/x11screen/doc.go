// Package x11screen answers display queries over X11: the current
// pointer position and whether the focused window is fullscreen.
package x11screen
