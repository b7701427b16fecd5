// Package settings binds the externally persisted configuration keys to
// an in-memory mirror and notifies observers when values change.
//
// The external representation is a flat JSON document whose keys match
// the persisted option names (for example "left-click-color"). A static
// binding table maps each key to its mirror field; the file is read with
// gjson and written key-at-a-time with sjson so unknown keys survive a
// save. A polling watcher picks up external edits and re-applies the
// bindings, notifying only the keys whose values actually changed.
package settings
