package archive

// Config holds configuration for the payload archive.
type Config struct {
	// Prefix is the object key prefix under which snapshots are stored.
	Prefix string `mapstructure:"prefix" default:"sync"`
	// RetentionDays is how long snapshots are kept before PruneExpired
	// removes them. Zero disables pruning.
	RetentionDays int `mapstructure:"retention_days" default:"30"`
}
