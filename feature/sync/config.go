package sync

// Config holds reconciliation settings.
type Config struct {
	// WindowDays bounds how far back a pass looks for updates on both
	// sides. Zero or negative falls back to 90.
	WindowDays int `mapstructure:"window_days" default:"90"`
	// EventBatchSize is how many events go to the platform per request.
	EventBatchSize int `mapstructure:"event_batch_size" default:"100"`
}
