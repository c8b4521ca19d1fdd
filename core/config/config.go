package config

import (
	"reflect"
	"strings"

	"gearsync/core/archive"
	"gearsync/core/database"
	"gearsync/core/logger"
	"gearsync/core/server"
	"gearsync/core/storage"
	"gearsync/feature/buoy"
	"gearsync/feature/hub"
	"gearsync/feature/sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Hub holds configuration for the external gear hub API.
	Hub hub.Config `mapstructure:"hub"`
	// Buoy holds configuration for the local tracking platform API.
	Buoy buoy.Config `mapstructure:"buoy"`
	// Sync holds configuration for the reconciliation passes.
	Sync sync.Config `mapstructure:"sync"`
	// Storage holds configuration for the object storage backing the archive.
	Storage storage.Config `mapstructure:"storage"`
	// Archive holds configuration for payload snapshots.
	Archive archive.Config `mapstructure:"archive"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the journal database connection.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// Load .env if present; a missing file is fine (e.g. production).
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. HUB_API_KEY -> hub.api_key)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// Nested structs contribute their own keys
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set the default (even when empty) so the key is
		// registered for AutomaticEnv.
		v.SetDefault(key, defaultValue)
	}
}
