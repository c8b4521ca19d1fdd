// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides the cross-cutting concerns that sit between a request and the
// feature handlers.
//
// # Components
//
//   - Auth: API key validation protecting the sync trigger and status endpoints.
//   - RayID: Generates a unique request ID (RayID) for every incoming request,
//     injecting it into the context and response headers so log lines and
//     journal rows can be traced back to the triggering call.
//
// Both are registered globally in the main application setup; RayID first so
// that every subsequent log line carries the identifier.
package middleware
