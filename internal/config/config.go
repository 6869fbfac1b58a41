// Package config provides configuration management for imgsheet using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
)

// Default configuration values.
const (
	defaultServerPort     = 8080
	defaultServerTimeout  = 60 * time.Second
	defaultMaxUploadBytes = 64 << 20
	defaultToastTTL       = 5 * time.Second
)

// EnvPrefix prefixes every environment variable, e.g. IMGSHEET_SERVER_PORT.
const EnvPrefix = "IMGSHEET"

// Config holds all configuration for the application.
type Config struct {
	Export  models.Settings `mapstructure:"export"`
	Output  OutputConfig    `mapstructure:"output"`
	Logging LoggingConfig   `mapstructure:"logging"`
	Server  ServerConfig    `mapstructure:"server"`
	UI      UIConfig        `mapstructure:"ui"`
}

// OutputConfig controls where documents are written.
type OutputConfig struct {
	Dir        string `mapstructure:"dir"`
	FilePrefix string `mapstructure:"file_prefix"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

// UIConfig holds the theme and notification settings.
type UIConfig struct {
	ThemeFile string        `mapstructure:"theme_file"`
	ToastTTL  time.Duration `mapstructure:"toast_ttl"`
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over file configuration.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".imgsheet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper decodes and validates an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)
	if cfg.Logging.Level == "warning" {
		cfg.Logging.Level = "warn"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	// Export defaults
	v.SetDefault("export.image_width", 400)
	v.SetDefault("export.image_height", 300)
	v.SetDefault("export.row_spacing", 2)
	v.SetDefault("export.left_columns", 1)
	v.SetDefault("export.top_rows", 1)
	v.SetDefault("export.show_image_numbers", true)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.file_prefix", "エビデンス")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.add_source", false)

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.read_timeout", defaultServerTimeout)
	v.SetDefault("server.write_timeout", defaultServerTimeout)
	v.SetDefault("server.max_upload_bytes", defaultMaxUploadBytes)

	v.SetDefault("ui.theme_file", "")
	v.SetDefault("ui.toast_ttl", defaultToastTTL)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Export.Validate(); err != nil {
		return err
	}

	const maxPort = 65535
	if c.Server.Port < 1 || c.Server.Port > maxPort {
		return fmt.Errorf("server.port must be between 1 and %d", maxPort)
	}
	if c.Server.MaxUploadBytes < 1 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	if c.UI.ToastTTL <= 0 {
		return fmt.Errorf("ui.toast_ttl must be positive")
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
