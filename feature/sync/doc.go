// Package sync reconciles gear deployment state between the external hub
// and the buoy tracking platform.
//
// A pass runs two independent phases. The download phase fetches the
// hub's recently updated gear sets and the full local collection
// concurrently, indexes local devices by their external trap identifier,
// compares the two snapshots trap by trap and pushes the resulting
// state-change events to the platform in fixed-size batches. The upload
// phase streams locally updated gear, converts each record into the
// hub's set/trap representation (excluding gear the hub itself owns) and
// submits everything in one call.
//
// Reconciliation is a pure computation over immutable snapshots: a trap
// emits at most one event per pass, agreeing states emit nothing, and
// rerunning over the same snapshots yields the same events. Item-level
// failures are collected on the report; only a transport failure ends a
// phase, and never the other phase or the process.
//
// The Service keeps no state between passes apart from the optional run
// journal and payload archive, which are audit artifacts rather than
// inputs.
package sync
