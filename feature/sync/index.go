package sync

import "gearsync/feature/buoy"

// DeviceIndex maps external trap identifiers to the local gear record
// carrying the matching device. Built once per pass from a snapshot of
// the local collection and never mutated afterwards.
type DeviceIndex map[string]buoy.Gear

// BuildDeviceIndex indexes every device with a non-empty source
// identifier. When two gears claim the same identifier the later one
// wins.
func BuildDeviceIndex(gears []buoy.Gear) DeviceIndex {
	index := make(DeviceIndex)
	for _, gear := range gears {
		for _, device := range gear.Devices {
			if device.SourceID == "" {
				continue
			}
			index[device.SourceID] = gear
		}
	}
	return index
}

// Lookup returns the gear owning the given trap identifier. Absence is a
// common, valid result: it means the trap has never been seen locally.
func (ix DeviceIndex) Lookup(trapID string) (buoy.Gear, bool) {
	gear, ok := ix[trapID]
	return gear, ok
}
