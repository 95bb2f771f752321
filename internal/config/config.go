package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string        `mapstructure:"DATABASE_URL"`
	JWTSecret   string        `mapstructure:"JWT_SECRET"`
	TokenTTL    time.Duration `mapstructure:"TOKEN_TTL"`
	Port        string        `mapstructure:"PORT"`
	GinMode     string        `mapstructure:"GIN_MODE"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`

	LoaderWait            time.Duration `mapstructure:"LOADER_WAIT"`
	LoaderMaxBatch        int           `mapstructure:"LOADER_MAX_BATCH"`
	GraphQLMaxParallelism int           `mapstructure:"GRAPHQL_MAX_PARALLELISM"`

	PreviewWorkers   int           `mapstructure:"PREVIEW_WORKERS"`
	PreviewQueueSize int           `mapstructure:"PREVIEW_QUEUE_SIZE"`
	PreviewTimeout   time.Duration `mapstructure:"PREVIEW_TIMEOUT"`
}

var defaults = map[string]any{
	"DATABASE_URL":            "file:twitterclone.db?_pragma=foreign_keys(1)",
	"JWT_SECRET":              "",
	"TOKEN_TTL":               "168h",
	"PORT":                    "8080",
	"GIN_MODE":                "debug",
	"LOG_LEVEL":               "info",
	"LOADER_WAIT":             "2ms",
	"LOADER_MAX_BATCH":        100,
	"GRAPHQL_MAX_PARALLELISM": 50,
	"PREVIEW_WORKERS":         2,
	"PREVIEW_QUEUE_SIZE":      100,
	"PREVIEW_TIMEOUT":         "10s",
}

// LoadConfig loads the configuration from a .env file in dir and environment variables.
// Environment variables win over the file; unset keys fall back to defaults.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// AutomaticEnv only feeds Unmarshal for keys viper already knows about.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}
