package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// Port is the TCP port the API listens on.
	Port int `mapstructure:"port" yaml:"port"`

	// DatabasePath is the SQLite database file location.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	// JWTSecret signs session tokens. Overridable via WATERWISE_JWT_SECRET.
	JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret"`

	// TokenTTLHours is how long issued session tokens stay valid.
	// Every issuance path uses this single value.
	TokenTTLHours int `mapstructure:"token_ttl_hours" yaml:"token_ttl_hours"`

	// CORSAllowedOrigin is the origin allowed to call the API from a browser.
	CORSAllowedOrigin string `mapstructure:"cors_allowed_origin" yaml:"cors_allowed_origin"`
}

// ClientConfig holds settings for the terminal client.
type ClientConfig struct {
	// ServerURL is the base URL of the WaterWise API.
	ServerURL string `mapstructure:"server_url" yaml:"server_url"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Client ClientConfig `mapstructure:"client" yaml:"client"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/waterwise/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "waterwise", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:              8080,
			DatabasePath:      "waterwise.db",
			TokenTTLHours:     24,
			CORSAllowedOrigin: "http://localhost:5173",
		},
		Client: ClientConfig{
			ServerURL: "http://localhost:8080",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration. The JWT
// secret may also come from the WATERWISE_JWT_SECRET environment variable,
// which takes precedence over the file.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.database_path", "waterwise.db")
	v.SetDefault("server.token_ttl_hours", 24)
	v.SetDefault("server.cors_allowed_origin", "http://localhost:5173")
	v.SetDefault("client.server_url", "http://localhost:8080")

	cfg := defaultAppConfig()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	} else if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if secret := os.Getenv("WATERWISE_JWT_SECRET"); secret != "" {
		cfg.Server.JWTSecret = secret
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("client", cfg.Client)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
