// Package buoy provides the client and wire types for the buoy tracking
// platform, the local system of record for gear.
//
// The platform exposes gear records (GET /gear/) behind a paginated
// data/results envelope and accepts state-change events (POST /events/).
// Gear listings filter on source_type=ropeless_buoy so the client only ever
// sees records this integration owns.
//
// ListGears fetches the whole collection eagerly for index building.
// StreamGears fetches lazily: pages are requested one at a time as the
// consumer drains the channel, and cancelling the context stops the
// producer between sends. Callers must drain the stream or cancel the
// context to release the producer goroutine.
package buoy
