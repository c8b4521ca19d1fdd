package buoy

// Config holds configuration for the buoy tracking platform API.
type Config struct {
	// BaseURL is the root URL of the platform API.
	BaseURL string `mapstructure:"base_url" default:""`
	// Token is the bearer token sent with every request.
	Token string `mapstructure:"token" default:""`
	// PageSize is how many gear records to request per page.
	PageSize int `mapstructure:"page_size" default:"1000"`
	// TimeoutSeconds is the connection and response timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
