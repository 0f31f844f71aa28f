package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Values come from configs/app.env with
// environment-variable overrides.
type Config struct {
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	StoreBackend    string        `mapstructure:"STORE_BACKEND"`
	LocationsFile   string        `mapstructure:"LOCATIONS_FILE"`
	SubmissionsFile string        `mapstructure:"SUBMISSIONS_FILE"`
	DBSource        string        `mapstructure:"DB_SOURCE"`
	GeocoderBaseURL string        `mapstructure:"GEOCODER_BASE_URL"`
	GeocoderTimeout time.Duration `mapstructure:"GEOCODER_TIMEOUT"`
}

// LoadConfig reads configuration from the given directory. A missing
// config file is fine; defaults and environment variables still apply.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("STORE_BACKEND", "file")
	viper.SetDefault("LOCATIONS_FILE", "data/all-locations.json")
	viper.SetDefault("SUBMISSIONS_FILE", "data/submissions.json")
	viper.SetDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("GEOCODER_TIMEOUT", 5*time.Second)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}
	return config, nil
}
