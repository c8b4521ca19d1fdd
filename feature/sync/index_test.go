package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearsync/feature/buoy"
)

func TestBuildDeviceIndex(t *testing.T) {
	gears := []buoy.Gear{
		{
			ID: "gear_1",
			Devices: []buoy.Device{
				{DeviceID: "d1", SourceID: "trap_1"},
				{DeviceID: "d2", SourceID: ""},
				{DeviceID: "d3", SourceID: "trap_3"},
			},
		},
		{
			ID:      "gear_2",
			Devices: []buoy.Device{{DeviceID: "d4", SourceID: "trap_4"}},
		},
	}

	index := BuildDeviceIndex(gears)

	require.Len(t, index, 3)

	gear, ok := index.Lookup("trap_1")
	require.True(t, ok)
	assert.Equal(t, "gear_1", gear.ID)

	gear, ok = index.Lookup("trap_3")
	require.True(t, ok)
	assert.Equal(t, "gear_1", gear.ID)

	gear, ok = index.Lookup("trap_4")
	require.True(t, ok)
	assert.Equal(t, "gear_2", gear.ID)

	_, ok = index.Lookup("")
	assert.False(t, ok, "empty source identifiers are never indexed")

	_, ok = index.Lookup("trap_unknown")
	assert.False(t, ok)
}

func TestBuildDeviceIndex_DuplicateSourceLastWins(t *testing.T) {
	gears := []buoy.Gear{
		{ID: "gear_old", Devices: []buoy.Device{{DeviceID: "d1", SourceID: "trap_1"}}},
		{ID: "gear_new", Devices: []buoy.Device{{DeviceID: "d2", SourceID: "trap_1"}}},
	}

	index := BuildDeviceIndex(gears)

	require.Len(t, index, 1)
	gear, ok := index.Lookup("trap_1")
	require.True(t, ok)
	assert.Equal(t, "gear_new", gear.ID)
}

func TestBuildDeviceIndex_Empty(t *testing.T) {
	assert.Empty(t, BuildDeviceIndex(nil))
	assert.Empty(t, BuildDeviceIndex([]buoy.Gear{{ID: "gear_1"}}))
}
