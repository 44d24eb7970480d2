// Package cli provides the interactive command-line client for the items
// server.
//
// Typical flow: prompt for credentials, start a background connectivity
// watcher, then execute user commands until exit.
//
// Commands:
//   - login / logout
//   - me: show the signed-in email
//   - list, add, edit, delete: manage your items
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
