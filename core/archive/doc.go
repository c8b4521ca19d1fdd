// Package archive persists JSON snapshots of sync payloads to object storage.
//
// Every sync pass can archive two artifacts: the gear sets downloaded from
// the hub and the deployment payload uploaded back. Snapshots are the audit
// trail for disputed runs; when the hub rejects sets or a partner reports
// missing gear, the exact payloads can be replayed from here.
//
// # Layout
//
// Objects are stored as
//
//	<prefix>/<destination>/<kind>/<timestamp>.json
//
// where kind is "download" or "upload". Retention is time based; PruneExpired
// removes snapshots older than the configured number of days.
//
// The archive is best effort by design: a failed snapshot write must never
// fail the sync pass that produced it.
package archive
