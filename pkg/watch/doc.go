// Package watch reports changes to block documents on disk so they can be
// linted again.
//
// Directories are watched recursively and filtered by extension; files named
// explicitly are always reported. Bursts of writes to one file are
// coalesced by a per-file Debouncer, so each save produces one callback.
package watch
