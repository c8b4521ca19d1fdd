// Package hub implements the client for the external gear-tracking hub.
//
// The hub is one of the two systems of record gearsync reconciles. It models
// fishing gear as sets of traps with a deployed/retrieved lifecycle and
// exposes three JSON-over-POST endpoints:
//
//   - search_hub: all sets updated since a point in time (the download source)
//   - search_own: the sets owned by this API key (credential checks)
//   - upload_deployments: push local deployment state back to the hub
//
// # Wire Format
//
// Timestamps arrive as ISO-8601 strings, either offset-bearing or naive (the
// latter are treated as UTC). Trap.EventTime resolves the authoritative time
// a trap's status took effect, by status-dependent priority. A null
// release_type is represented as "" and is always serialized.
//
// Requests are rate limited and run against strict transport timeouts, so a
// degraded hub slows a sync pass down instead of wedging it.
package hub
