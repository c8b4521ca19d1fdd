package hub

// Config holds configuration for the external gear hub API.
type Config struct {
	// BaseURL is the root URL of the hub API.
	BaseURL string `mapstructure:"base_url" default:""`
	// APIKey authenticates every hub request.
	APIKey string `mapstructure:"api_key" default:""`
	// MaxSets caps how many gear sets a single search returns.
	MaxSets int `mapstructure:"max_sets" default:"1000"`
	// TimeoutSeconds is the connection and response timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// RequestsPerSecond throttles outbound hub calls.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"4"`
	// Tag is the manufacturer label the hub stamps on gear it owns.
	// Local gear carrying this tag originated at the hub and is never
	// uploaded back to it.
	Tag string `mapstructure:"tag" default:"rmwhub"`
}
