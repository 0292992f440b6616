package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the backend configuration.
type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`
	DBPath     string `mapstructure:"db_path"`
	// FieldsFile optionally overrides the built-in field catalog.
	FieldsFile string `mapstructure:"fields_file"`
	// JWTSecret signs the bearer tokens accepted on import endpoints.
	JWTSecret         string `mapstructure:"jwt_secret"`
	RateLimit         int    `mapstructure:"rate_limit"`
	RateWindowSeconds int    `mapstructure:"rate_window_seconds"`
	GinMode           string `mapstructure:"gin_mode"`
}

// Load reads configuration from an optional YAML file and WEATHERFLASH_*
// environment variables, falling back to defaults. An empty path looks for
// weatherflash.yaml in the working directory; its absence is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("db_path", "./data/observations.db")
	v.SetDefault("fields_file", "")
	v.SetDefault("jwt_secret", "change-me-in-production")
	v.SetDefault("rate_limit", 120)
	v.SetDefault("rate_window_seconds", 60)
	v.SetDefault("gin_mode", "release")

	v.SetEnvPrefix("WEATHERFLASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("weatherflash")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
