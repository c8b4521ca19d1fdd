package hub

import (
	"fmt"
	"sort"
	"time"
)

// Trap statuses on the hub wire format.
const (
	StatusDeployed  = "deployed"
	StatusRetrieved = "retrieved"
)

// Deployment kinds.
const (
	KindSingle = "single"
	KindTrawl  = "trawl"
)

// Trap is one physical trap position within a gear set.
type Trap struct {
	ID                   string  `json:"trap_id"`
	Sequence             int     `json:"sequence"`
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	DeployDateTimeUTC    string  `json:"deploy_datetime_utc"`
	SurfaceDateTimeUTC   string  `json:"surface_datetime_utc"`
	RetrievedDateTimeUTC string  `json:"retrieved_datetime_utc"`
	Status               string  `json:"status"`
	Accuracy             string  `json:"accuracy"`
	// ReleaseType is "" when the hub sends null. It is always serialized,
	// never omitted.
	ReleaseType  string `json:"release_type"`
	IsOnEnd      bool   `json:"is_on_end"`
	Manufacturer string `json:"manufacturer,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
}

// GearSet is a deployment of one or more traps sharing a set identifier.
type GearSet struct {
	ID             string   `json:"set_id"`
	VesselID       string   `json:"vessel_id"`
	DeploymentType string   `json:"deployment_type"`
	TrapsInSet     int      `json:"traps_in_set,omitempty"`
	TrawlPath      string   `json:"trawl_path"`
	ShareWith      []string `json:"share_with,omitempty"`
	Traps          []Trap   `json:"traps"`
	WhenUpdatedUTC string   `json:"when_updated_utc"`
}

// OrderedTraps returns the set's traps sorted by sequence number. The hub
// does not guarantee wire order, only the sequence field is authoritative.
func (g GearSet) OrderedTraps() []Trap {
	traps := make([]Trap, len(g.Traps))
	copy(traps, g.Traps)
	sort.SliceStable(traps, func(i, j int) bool {
		return traps[i].Sequence < traps[j].Sequence
	})
	return traps
}

// DeploymentKind returns the kind for a set of n traps.
func DeploymentKind(n int) string {
	if n > 1 {
		return KindTrawl
	}
	return KindSingle
}

// EventTime resolves the single authoritative time at which the trap's
// current status took effect.
//
// For deployed traps that is the deploy time; for retrieved traps the
// retrieved time, falling back to the surfaced and then the deploy time.
// A trap whose relevant timestamps are all missing or unparseable resolves
// to the current time rather than failing, since partial upstream data is
// routine. An unrecognized status is an error.
func (t Trap) EventTime() (time.Time, error) {
	switch t.Status {
	case StatusDeployed:
		if ts, err := parseHubTime(t.DeployDateTimeUTC); err == nil {
			return ts, nil
		}
		return time.Now().UTC(), nil
	case StatusRetrieved:
		for _, raw := range []string{t.RetrievedDateTimeUTC, t.SurfaceDateTimeUTC, t.DeployDateTimeUTC} {
			if ts, err := parseHubTime(raw); err == nil {
				return ts, nil
			}
		}
		return time.Now().UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unrecognized trap status %q", t.Status)
	}
}

// hubTimeLayouts covers the timestamp shapes observed from the hub:
// RFC 3339 with an offset, and naive forms (T or space separated) that are
// implicitly UTC. Fractional seconds are tolerated by the parser on all of
// them.
var hubTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseHubTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range hubTimeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}
