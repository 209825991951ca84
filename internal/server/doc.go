// Package server runs the HTTP transport of the bookmarks API.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown, after which registered shutdown hooks release background
// workers, database connections and error reporting buffers.
package server
