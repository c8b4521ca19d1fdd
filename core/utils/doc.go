// Package utils provides small shared helpers for the gearsync application,
// such as slice batching used when forwarding events in fixed-size chunks.
package utils
