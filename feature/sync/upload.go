package sync

import (
	"fmt"
	"strings"
	"time"

	"gearsync/feature/buoy"
	"gearsync/feature/hub"
)

// Transformer converts local gear records into the hub's deployment
// representation.
type Transformer struct {
	hubTag  string
	serials *SerialRegistry
}

// NewTransformer creates a transformer. hubTag is the manufacturer label
// the hub stamps on gear it owns; matching gear is excluded from upload
// so hub data never flows back into the hub. A nil registry gets the
// built-in rules.
func NewTransformer(hubTag string, serials *SerialRegistry) *Transformer {
	if serials == nil {
		serials = NewSerialRegistry()
	}
	return &Transformer{hubTag: hubTag, serials: serials}
}

// Build produces the hub gear set for one local gear. A nil set with a
// nil error means the gear is excluded from upload. A gear without
// devices cannot be represented and is an error.
func (t *Transformer) Build(gear buoy.Gear) (*hub.GearSet, error) {
	if strings.EqualFold(gear.Manufacturer, t.hubTag) {
		return nil, nil
	}
	if len(gear.Devices) == 0 {
		return nil, fmt.Errorf("gear %s has no devices", gear.ID)
	}

	// The hub wire format knows exactly two states, so every local
	// lifecycle state other than deployed collapses to retrieved.
	status := hub.StatusRetrieved
	if gear.IsDeployed() {
		status = hub.StatusDeployed
	}

	traps := make([]hub.Trap, 0, len(gear.Devices))
	for i, device := range gear.Devices {
		deployedAt := device.LastDeployed
		if deployedAt.IsZero() {
			deployedAt = gear.LastUpdated
		}

		retrievedAt := ""
		if status == hub.StatusRetrieved {
			retrievedAt = device.LastUpdated.UTC().Format(time.RFC3339)
		}

		traps = append(traps, hub.Trap{
			ID:                   device.SourceID,
			Sequence:             i + 1,
			Latitude:             device.Location.Latitude,
			Longitude:            device.Location.Longitude,
			DeployDateTimeUTC:    deployedAt.UTC().Format(time.RFC3339),
			SurfaceDateTimeUTC:   "",
			RetrievedDateTimeUTC: retrievedAt,
			Status:               status,
			Accuracy:             "high",
			ReleaseType:          "",
			IsOnEnd:              i == len(gear.Devices)-1,
			Manufacturer:         gear.Manufacturer,
			SerialNumber:         t.serials.Extract(gear.Manufacturer, device.DeviceID),
		})
	}

	return &hub.GearSet{
		ID:             gear.ID,
		VesselID:       "",
		DeploymentType: hub.DeploymentKind(len(gear.Devices)),
		Traps:          traps,
		WhenUpdatedUTC: gear.LastUpdated.UTC().Format(time.RFC3339),
	}, nil
}
