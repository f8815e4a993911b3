// Package app wires the application together: configuration, logging, the
// dataset load at startup, the service layer, the chi router with its
// middleware chain, and the HTTP server lifecycle.
package app
