package server_test

import (
	"testing"

	"gearsync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidDestination(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		want        bool
	}{
		{"Default", "buoy", true},
		{"WithDash", "buoy-east", true},
		{"WithUnderscore", "buoy_2", true},
		{"Empty", "", false},
		{"Uppercase", "Buoy", false},
		{"Slash", "buoy/east", false},
		{"Space", "buoy east", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Destination: tt.destination}
			assert.Equal(t, tt.want, c.IsValidDestination())
		})
	}
}
