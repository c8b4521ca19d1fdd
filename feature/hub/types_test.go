package hub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrap_EventTime_Deployed(t *testing.T) {
	t.Run("UsesDeployTime", func(t *testing.T) {
		trap := Trap{
			Status:            StatusDeployed,
			DeployDateTimeUTC: "2025-10-20T08:00:00+00:00",
		}

		ts, err := trap.EventTime()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC), ts)
	})

	t.Run("MissingDeployTimeFallsBackToNow", func(t *testing.T) {
		trap := Trap{Status: StatusDeployed}

		ts, err := trap.EventTime()
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), ts, 2*time.Second)
	})

	t.Run("IgnoresRetrievedTime", func(t *testing.T) {
		trap := Trap{
			Status:               StatusDeployed,
			DeployDateTimeUTC:    "2025-10-20T08:00:00Z",
			RetrievedDateTimeUTC: "2025-10-21T08:00:00Z",
		}

		ts, err := trap.EventTime()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC), ts)
	})
}

func TestTrap_EventTime_Retrieved(t *testing.T) {
	deploy := "2025-10-01T00:00:00Z"
	surface := "2025-10-02T00:00:00Z"
	retrieved := "2025-10-03T00:00:00Z"

	tests := []struct {
		name string
		trap Trap
		want time.Time
	}{
		{
			name: "RetrievedWins",
			trap: Trap{Status: StatusRetrieved, DeployDateTimeUTC: deploy, SurfaceDateTimeUTC: surface, RetrievedDateTimeUTC: retrieved},
			want: time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "SurfacedWhenNoRetrieved",
			trap: Trap{Status: StatusRetrieved, DeployDateTimeUTC: deploy, SurfaceDateTimeUTC: surface},
			want: time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "DeployWhenOnlyDeploy",
			trap: Trap{Status: StatusRetrieved, DeployDateTimeUTC: deploy},
			want: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := tt.trap.EventTime()
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts)
		})
	}

	t.Run("NothingSetFallsBackToNow", func(t *testing.T) {
		trap := Trap{Status: StatusRetrieved}

		ts, err := trap.EventTime()
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), ts, 2*time.Second)
	})
}

func TestTrap_EventTime_UnrecognizedStatus(t *testing.T) {
	trap := Trap{Status: "lost", DeployDateTimeUTC: "2025-10-01T00:00:00Z"}

	_, err := trap.EventTime()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized trap status")
}

func TestParseHubTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"RFC3339Offset", "2025-10-20T08:00:00+00:00", time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)},
		{"RFC3339Zulu", "2025-10-20T08:00:00Z", time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)},
		{"NonUTCOffsetNormalized", "2025-10-20T08:00:00+02:00", time.Date(2025, 10, 20, 6, 0, 0, 0, time.UTC)},
		{"NaiveIsUTC", "2025-10-20T08:00:00", time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)},
		{"NaiveWithFraction", "2025-10-20T08:00:00.123456", time.Date(2025, 10, 20, 8, 0, 0, 123456000, time.UTC)},
		{"SpaceSeparated", "2025-10-20 08:00:00", time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := parseHubTime(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts)
		})
	}

	t.Run("Empty", func(t *testing.T) {
		_, err := parseHubTime("")
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := parseHubTime("last tuesday")
		assert.Error(t, err)
	})
}

func TestGearSet_OrderedTraps(t *testing.T) {
	set := GearSet{
		ID: "set_001",
		Traps: []Trap{
			{ID: "t3", Sequence: 3},
			{ID: "t1", Sequence: 1},
			{ID: "t2", Sequence: 2},
		},
	}

	ordered := set.OrderedTraps()
	assert.Equal(t, []string{"t1", "t2", "t3"}, []string{ordered[0].ID, ordered[1].ID, ordered[2].ID})

	// The original slice stays untouched
	assert.Equal(t, "t3", set.Traps[0].ID)
}

func TestDeploymentKind(t *testing.T) {
	assert.Equal(t, KindSingle, DeploymentKind(1))
	assert.Equal(t, KindTrawl, DeploymentKind(2))
	assert.Equal(t, KindTrawl, DeploymentKind(10))
	assert.Equal(t, KindSingle, DeploymentKind(0))
}
