// Package status probes the collaborators a sync pass depends on: the
// gear hub, the tracking platform, the journal database and the
// snapshot archive. The two APIs are required; the database and archive
// are optional and report healthy when they were never configured.
package status
