// Package cli provides the interactive planner command-line client.
//
// App wires the auth and planner services to a line-oriented REPL. While
// the REPL runs, a watcher pings the server to track online/offline mode
// and a background syncer downloads everything on a fixed interval, but
// only while online.
//
// Records are created, edited and deleted locally first; each change is
// then pushed to the server in the background.
package cli
