package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearsync/feature/buoy"
	"gearsync/feature/hub"
)

func hubTrap(id string, sequence int, status string) hub.Trap {
	return hub.Trap{
		ID:                   id,
		Sequence:             sequence,
		Latitude:             42.123456,
		Longitude:            -70.654321,
		Status:               status,
		DeployDateTimeUTC:    "2025-10-20T08:00:00Z",
		RetrievedDateTimeUTC: "2025-10-21T09:00:00Z",
		Accuracy:             "high",
	}
}

func localGear(id, status, sourceID string) buoy.Gear {
	return buoy.Gear{
		ID:          id,
		Status:      status,
		LastUpdated: time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC),
		Devices: []buoy.Device{
			{
				DeviceID: "edgetech_ET-1_" + id,
				SourceID: sourceID,
				Location: buoy.DeviceLocation{Latitude: 42.0, Longitude: -70.0},
			},
		},
	}
}

func TestReconciler_DecisionTable(t *testing.T) {
	tests := []struct {
		name        string
		trapStatus  string
		localStatus string // empty = no local match
		wantEvent   string // empty = skip
		wantErr     bool
	}{
		{"DeployedNoMatchEmitsDeployed", hub.StatusDeployed, "", buoy.EventTrapDeployed, false},
		{"DeployedDeployedSkips", hub.StatusDeployed, buoy.StateDeployed, "", false},
		{"DeployedRetrievedEmitsDeployed", hub.StatusDeployed, buoy.StateRetrieved, buoy.EventTrapDeployed, false},
		{"DeployedHauledEmitsDeployed", hub.StatusDeployed, buoy.StateHauled, buoy.EventTrapDeployed, false},
		{"RetrievedNoMatchSkips", hub.StatusRetrieved, "", "", false},
		{"RetrievedDeployedEmitsRetrieved", hub.StatusRetrieved, buoy.StateDeployed, buoy.EventTrapRetrieved, false},
		{"RetrievedRetrievedSkips", hub.StatusRetrieved, buoy.StateRetrieved, "", false},
		{"RetrievedHauledSkips", hub.StatusRetrieved, buoy.StateHauled, "", false},
		{"UnknownStatusIsItemError", "lost", buoy.StateDeployed, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets := []hub.GearSet{{ID: "set_1", Traps: []hub.Trap{hubTrap("trap_1", 1, tt.trapStatus)}}}

			index := DeviceIndex{}
			if tt.localStatus != "" {
				index = BuildDeviceIndex([]buoy.Gear{localGear("gear_1", tt.localStatus, "trap_1")})
			}

			out := NewReconciler(zap.NewNop()).Reconcile(sets, index)

			if tt.wantErr {
				require.Len(t, out.Errors, 1)
				assert.Equal(t, "set_1", out.Errors[0].SetID)
				assert.Equal(t, "trap_1", out.Errors[0].TrapID)
				assert.Empty(t, out.Events)
				return
			}

			require.Empty(t, out.Errors)
			if tt.wantEvent == "" {
				assert.Empty(t, out.Events)
				assert.Equal(t, 1, out.Skipped)
				return
			}

			require.Len(t, out.Events, 1)
			assert.Equal(t, tt.wantEvent, out.Events[0].EventType)
			assert.Equal(t, "set_1", out.Events[0].SourceName)
			assert.Equal(t, "trap_1", out.Events[0].Source)
		})
	}
}

func TestReconciler_DownloadEndToEnd(t *testing.T) {
	set := hub.GearSet{
		ID: "set_456",
		Traps: []hub.Trap{
			{
				ID:                "trap_789",
				Sequence:          1,
				Latitude:          42.123456,
				Longitude:         -70.654321,
				Status:            hub.StatusDeployed,
				DeployDateTimeUTC: "2025-10-20T08:00:00+00:00",
			},
		},
	}

	out := NewReconciler(zap.NewNop()).Reconcile([]hub.GearSet{set}, DeviceIndex{})

	require.Empty(t, out.Errors)
	require.Len(t, out.Events, 1)

	event := out.Events[0]
	assert.Equal(t, buoy.EventTrapDeployed, event.EventType)
	assert.Equal(t, "set_456", event.SourceName)
	assert.Equal(t, "trap_789", event.Source)
	assert.Equal(t, time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC), event.RecordedAt)
	assert.Equal(t, buoy.EventLocation{Lat: 42.123456, Lon: -70.654321}, event.Location)

	payload, ok := event.Payload.(hub.GearSet)
	require.True(t, ok)
	assert.Equal(t, "set_456", payload.ID)
}

func TestReconciler_TrawlRetrievalKeepsPerTrapTimes(t *testing.T) {
	set := hub.GearSet{
		ID: "set_trawl",
		Traps: []hub.Trap{
			{ID: "trap_a", Sequence: 1, Status: hub.StatusRetrieved, RetrievedDateTimeUTC: "2025-10-21T06:00:00Z"},
			{ID: "trap_b", Sequence: 2, Status: hub.StatusRetrieved, RetrievedDateTimeUTC: "2025-10-21T07:30:00Z"},
		},
	}
	index := BuildDeviceIndex([]buoy.Gear{
		localGear("gear_a", buoy.StateDeployed, "trap_a"),
		localGear("gear_b", buoy.StateDeployed, "trap_b"),
	})

	out := NewReconciler(zap.NewNop()).Reconcile([]hub.GearSet{set}, index)

	require.Empty(t, out.Errors)
	require.Len(t, out.Events, 2)

	assert.Equal(t, buoy.EventTrapRetrieved, out.Events[0].EventType)
	assert.Equal(t, "set_trawl", out.Events[0].SourceName)
	assert.Equal(t, "set_trawl", out.Events[1].SourceName)
	assert.Equal(t, "trap_a", out.Events[0].Source)
	assert.Equal(t, "trap_b", out.Events[1].Source)
	assert.Equal(t, time.Date(2025, 10, 21, 6, 0, 0, 0, time.UTC), out.Events[0].RecordedAt)
	assert.Equal(t, time.Date(2025, 10, 21, 7, 30, 0, 0, time.UTC), out.Events[1].RecordedAt)
}

func TestReconciler_TrapFailureSparesSiblings(t *testing.T) {
	set := hub.GearSet{
		ID: "set_mixed",
		Traps: []hub.Trap{
			hubTrap("trap_bad", 1, "exploded"),
			hubTrap("trap_new", 2, hub.StatusDeployed),
			hubTrap("trap_done", 3, hub.StatusRetrieved),
		},
	}
	index := BuildDeviceIndex([]buoy.Gear{localGear("gear_done", buoy.StateDeployed, "trap_done")})

	out := NewReconciler(zap.NewNop()).Reconcile([]hub.GearSet{set}, index)

	require.Len(t, out.Errors, 1)
	assert.Equal(t, "trap_bad", out.Errors[0].TrapID)
	assert.Contains(t, out.Errors[0].Reason, "unrecognized trap status")

	require.Len(t, out.Events, 2)
	assert.Equal(t, "trap_new", out.Events[0].Source)
	assert.Equal(t, buoy.EventTrapDeployed, out.Events[0].EventType)
	assert.Equal(t, "trap_done", out.Events[1].Source)
	assert.Equal(t, buoy.EventTrapRetrieved, out.Events[1].EventType)
}

func TestReconciler_OrderFollowsInputSetsAndTrapSequence(t *testing.T) {
	sets := []hub.GearSet{
		{ID: "set_2", Traps: []hub.Trap{
			// Stored out of sequence order on purpose.
			hubTrap("trap_2b", 2, hub.StatusDeployed),
			hubTrap("trap_2a", 1, hub.StatusDeployed),
		}},
		{ID: "set_1", Traps: []hub.Trap{
			hubTrap("trap_1a", 1, hub.StatusDeployed),
		}},
	}

	out := NewReconciler(zap.NewNop()).Reconcile(sets, DeviceIndex{})

	require.Len(t, out.Events, 3)
	assert.Equal(t, []string{"trap_2a", "trap_2b", "trap_1a"},
		[]string{out.Events[0].Source, out.Events[1].Source, out.Events[2].Source})
}

func TestReconciler_Idempotence(t *testing.T) {
	sets := []hub.GearSet{
		{ID: "set_1", Traps: []hub.Trap{
			hubTrap("trap_1", 1, hub.StatusDeployed),
			hubTrap("trap_2", 2, hub.StatusRetrieved),
		}},
	}
	index := BuildDeviceIndex([]buoy.Gear{
		localGear("gear_1", buoy.StateRetrieved, "trap_1"),
		localGear("gear_2", buoy.StateDeployed, "trap_2"),
	})

	r := NewReconciler(zap.NewNop())
	first := r.Reconcile(sets, index)
	second := r.Reconcile(sets, index)

	assert.Equal(t, first, second)
	require.Len(t, first.Events, 2)
}

func TestReconciler_AgreementIsSilent(t *testing.T) {
	sets := []hub.GearSet{
		{ID: "set_1", Traps: []hub.Trap{
			hubTrap("trap_1", 1, hub.StatusDeployed),
			hubTrap("trap_2", 2, hub.StatusRetrieved),
		}},
	}
	index := BuildDeviceIndex([]buoy.Gear{
		localGear("gear_1", buoy.StateDeployed, "trap_1"),
		localGear("gear_2", buoy.StateHauled, "trap_2"),
	})

	out := NewReconciler(zap.NewNop()).Reconcile(sets, index)

	assert.Empty(t, out.Events)
	assert.Empty(t, out.Errors)
	assert.Equal(t, 2, out.Skipped)
}
