package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application. Values are read by
// viper from a config file or environment variables; every field has a
// working default so the editor runs with no configuration at all.
type Config struct {
	// DataDir is where the BadgerDB document store lives.
	DataDir string `mapstructure:"DATA_DIR"`

	// ListenAddr is the HTTP editor's bind address.
	ListenAddr string `mapstructure:"LISTEN_ADDR"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from path/config.yaml and the environment.
// A missing config file is not an error; environment variables and defaults
// cover everything.
func Load(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("DATA_DIR", "./invoicepad_data")
	viper.SetDefault("LISTEN_ADDR", ":8080")
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return config, nil
}
