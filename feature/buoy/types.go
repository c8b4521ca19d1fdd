package buoy

import "time"

// SourceType identifies ropeless buoy gear records on the platform.
const SourceType = "ropeless_buoy"

// Gear lifecycle states reported by the platform. Anything other than
// deployed counts as out of the water.
const (
	StateDeployed  = "deployed"
	StateRetrieved = "retrieved"
	StateHauled    = "hauled"
)

// Event types pushed back to the platform.
const (
	EventTrapDeployed  = "trap_deployed"
	EventTrapRetrieved = "trap_retrieved"
)

// DeviceLocation is a device position in decimal degrees.
type DeviceLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Device is one physical unit attached to a gear record.
type Device struct {
	// DeviceID is the manufacturer-encoded identifier.
	DeviceID string `json:"device_id"`
	// SourceID links the device to its external hub trap. Empty when the
	// device has never been matched.
	SourceID string         `json:"source_id"`
	Label    string         `json:"label"`
	Location DeviceLocation `json:"location"`
	// LastUpdated is when the platform last touched this device.
	LastUpdated time.Time `json:"last_updated"`
	// LastDeployed is zero when the device has never been deployed.
	LastDeployed time.Time `json:"last_deployed"`
}

// Gear is one gear record on the platform.
type Gear struct {
	ID           string    `json:"id"`
	DisplayID    string    `json:"display_id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	Type         string    `json:"type"`
	Manufacturer string    `json:"manufacturer"`
	LastUpdated  time.Time `json:"last_updated"`
	Devices      []Device  `json:"devices"`
}

// IsDeployed reports whether the gear is in the water. Every other
// lifecycle state (hauled, retrieved, lost) compares as retrieved.
func (g Gear) IsDeployed() bool {
	return g.Status == StateDeployed
}

// EventLocation is the wire form for event coordinates.
type EventLocation struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Event is one state-change record pushed to the platform.
type Event struct {
	// SourceName is the external gear set identifier.
	SourceName string `json:"source_name"`
	// Source is the external trap identifier.
	Source     string        `json:"source"`
	EventType  string        `json:"event_type"`
	RecordedAt time.Time     `json:"recorded_at"`
	Location   EventLocation `json:"location"`
	// Payload carries the originating gear set verbatim.
	Payload any `json:"payload,omitempty"`
}

// GearItem is one element of a gear stream. When Err is set the stream is
// broken and no further items follow.
type GearItem struct {
	Gear Gear
	Err  error
}
