package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// Destination is the label identifying this deployment's sync target.
	// It tags journal rows, archive object paths and log fields.
	Destination string `mapstructure:"destination" default:"buoy"`
}

// IsValidDestination checks if the configured destination label is usable.
// The label ends up in archive object keys and journal rows, so it is
// restricted to lowercase alphanumerics, dashes and underscores.
func (c Config) IsValidDestination() bool {
	if c.Destination == "" {
		return false
	}
	for _, r := range c.Destination {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
