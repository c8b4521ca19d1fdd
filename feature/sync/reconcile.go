package sync

import (
	"fmt"

	"go.uber.org/zap"

	"gearsync/feature/buoy"
	"gearsync/feature/hub"
)

// ItemError records one trap or gear that could not be processed. The
// surrounding pass always continues past it.
type ItemError struct {
	SetID  string `json:"set_id,omitempty"`
	TrapID string `json:"trap_id,omitempty"`
	GearID string `json:"gear_id,omitempty"`
	Reason string `json:"reason"`
}

// Outcome is the result of reconciling one snapshot pair.
type Outcome struct {
	Events  []buoy.Event
	Skipped int
	Errors  []ItemError
}

// Reconciler compares external trap state against the local device index
// and emits the minimal set of state-change events.
type Reconciler struct {
	logger *zap.Logger
}

// NewReconciler creates a reconciler.
func NewReconciler(logger *zap.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// Reconcile walks the sets in input order and each set's traps in
// sequence order. A trap yields at most one event per pass; a trap-level
// failure is recorded and its siblings still get processed. Reconcile is
// a pure computation over the two snapshots: feeding it the same inputs
// again produces the same outcome.
func (r *Reconciler) Reconcile(sets []hub.GearSet, index DeviceIndex) Outcome {
	var out Outcome

	for _, set := range sets {
		for _, trap := range set.OrderedTraps() {
			event, err := r.decide(set, trap, index)
			if err != nil {
				out.Errors = append(out.Errors, ItemError{SetID: set.ID, TrapID: trap.ID, Reason: err.Error()})
				continue
			}
			if event == nil {
				out.Skipped++
				continue
			}
			out.Events = append(out.Events, *event)
		}
	}

	return out
}

// decide applies the state comparison for one trap. A nil event with a
// nil error means the trap is already in sync and nothing gets emitted.
func (r *Reconciler) decide(set hub.GearSet, trap hub.Trap, index DeviceIndex) (*buoy.Event, error) {
	gear, found := index.Lookup(trap.ID)

	var eventType string
	switch trap.Status {
	case hub.StatusDeployed:
		// Re-deployment over a locally retrieved gear emits again; only
		// an agreeing deployed state is silent.
		if found && gear.IsDeployed() {
			return nil, nil
		}
		eventType = buoy.EventTrapDeployed

	case hub.StatusRetrieved:
		if !found {
			// No local deployment history to close out.
			r.logger.Debug("Skipping retrieved trap with no local match",
				zap.String("set_id", set.ID),
				zap.String("trap_id", trap.ID),
			)
			return nil, nil
		}
		if !gear.IsDeployed() {
			return nil, nil
		}
		eventType = buoy.EventTrapRetrieved

	default:
		return nil, fmt.Errorf("unrecognized trap status %q", trap.Status)
	}

	recordedAt, err := trap.EventTime()
	if err != nil {
		return nil, err
	}

	return &buoy.Event{
		SourceName: set.ID,
		Source:     trap.ID,
		EventType:  eventType,
		RecordedAt: recordedAt,
		Location:   buoy.EventLocation{Lat: trap.Latitude, Lon: trap.Longitude},
		Payload:    set,
	}, nil
}
