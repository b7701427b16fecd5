// Package applet wires the settings bridge, icon cache, click
// dispatcher, and animator into the standard plugin lifecycle:
// Init(metadata), Enable, Disable.
//
// The host plugin contract allows one applet instance per lifecycle.
// That instance is held as an explicit package-level handle: Enable
// constructs it, Disable tears it down and drops it, and the next
// Enable builds fresh state.
package applet
