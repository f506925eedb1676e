// Package state persists the navigation marker between sessions.
//
// Two stores implement router.MarkerStore:
//
//   - MemoryStore keeps the marker in process. It is what a single TUI run
//     or a test needs.
//   - SQLiteStore keeps one marker per session id in a SQLite database under
//     the XDG data directory, so "--session <id>" reopens a previous run the
//     way a browser reload reopens a page with its fragment intact.
//
// Only the marker is persisted. The open record never is, which is what
// makes a stale "#detail" marker possible and why the router corrects it.
package state
