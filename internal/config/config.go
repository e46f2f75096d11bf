package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Schema  SchemaConfig
	Convert ConvertConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SchemaConfig holds column-schema settings. An empty Path selects the
// embedded default schema.
type SchemaConfig struct {
	Path string `mapstructure:"path"`
}

// ConvertConfig holds conversion settings.
type ConvertConfig struct {
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	DefaultFormat string `mapstructure:"default_format"`
}

// Load reads configuration from environment variables with the PWFCONV_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PWFCONV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Schema defaults (empty path = embedded schema)
	v.SetDefault("schema.path", "")

	// Convert defaults
	v.SetDefault("convert.max_file_size_mb", 50)
	v.SetDefault("convert.default_format", "json")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "PWFCONV_SERVER_PORT",
		"server.read_timeout":      "PWFCONV_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "PWFCONV_SERVER_WRITE_TIMEOUT",
		"server.environment":       "PWFCONV_SERVER_ENVIRONMENT",
		"log.level":                "PWFCONV_LOG_LEVEL",
		"log.format":               "PWFCONV_LOG_FORMAT",
		"schema.path":              "PWFCONV_SCHEMA_PATH",
		"convert.max_file_size_mb": "PWFCONV_CONVERT_MAX_FILE_SIZE_MB",
		"convert.default_format":   "PWFCONV_CONVERT_DEFAULT_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PWFCONV_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PWFCONV_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Schema = SchemaConfig{
		Path: v.GetString("schema.path"),
	}
	cfg.Convert = ConvertConfig{
		MaxFileSizeMB: v.GetInt64("convert.max_file_size_mb"),
		DefaultFormat: v.GetString("convert.default_format"),
	}

	return cfg, nil
}
