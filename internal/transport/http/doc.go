// Package http contains the HTTP handlers of the dashboard API. Handlers
// depend on narrow service interfaces, validate request parameters, and
// answer errors as RFC 7807 problem documents.
package http
