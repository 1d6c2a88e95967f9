// Package server holds the HTTP server configuration.
//
// The Fiber app itself is assembled in the start command; this package only
// carries the listen port and the API key so core/config can embed it.
package server
