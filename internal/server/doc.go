// Package server wires the shoutout service into an Echo HTTP server:
// routes, handlers, rate limiting, and observability endpoints.
package server
