// Package icon derives colored variants of base monochrome SVG icons
// and caches them on disk.
//
// Entries are keyed by (icon mode, click type, color). Lookup is
// two-tier: an in-memory handle map first, then the cache directory;
// lookups never generate. Generation reads the base icon for a mode,
// substitutes its black fill attribute with the target color, and
// writes the result under the cache directory.
package icon
