package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application-level configuration.
type Config struct {
	APIURL         string        `validate:"required,url"` // e.g. "https://api.palette.example"
	WSURL          string        `validate:"omitempty,url"`
	TokenPath      string        `validate:"required"` // Path to file containing the access token
	UIStatePath    string        `validate:"required"`
	PageSize       int           `validate:"min=1,max=100"`
	RequestTimeout time.Duration `validate:"gt=0"`
	Log            LogConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
	Output string `validate:"required"` // stdout, stderr, or file path
}

// Load reads configuration from config.toml and environment variables.
// Priority (highest to lowest):
//  1. PALETTE_* environment variables (e.g. PALETTE_API_URL, PALETTE_LOG_LEVEL)
//  2. .env in the config directory (never overrides the real environment)
//  3. config.toml in the config directory
//  4. Built-in defaults
//
// The config directory is PALETTE_CONFIG_DIR, or ~/.config/palette.
func Load() (Config, error) {
	dir, err := configDir()
	if err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()
	applyDefaults(v, dir)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("PALETTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		APIURL:         strings.TrimSpace(v.GetString("api_url")),
		WSURL:          strings.TrimSpace(v.GetString("ws_url")),
		TokenPath:      v.GetString("token_path"),
		UIStatePath:    v.GetString("ui_state_path"),
		PageSize:       v.GetInt("page_size"),
		RequestTimeout: v.GetDuration("request_timeout"),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
			Output: v.GetString("log.output"),
		},
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Dir returns the directory holding config.toml, the token and UI state.
func Dir() (string, error) { return configDir() }

func configDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("PALETTE_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "palette"), nil
}

func applyDefaults(v *viper.Viper, dir string) {
	v.SetDefault("api_url", "http://localhost:5000")
	v.SetDefault("ws_url", "")
	v.SetDefault("token_path", filepath.Join(dir, "token"))
	v.SetDefault("ui_state_path", filepath.Join(dir, "ui_state.json"))
	v.SetDefault("page_size", 20)
	v.SetDefault("request_timeout", 15*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", filepath.Join(dir, "palette.log"))
}

// normalize checks the API URL scheme and derives the websocket URL.
func (c *Config) normalize() error {
	parsed, err := url.Parse(c.APIURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid api_url: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		if !isLoopback(parsed.Hostname()) {
			return fmt.Errorf("invalid api_url: only https is allowed for non-local hosts")
		}
	default:
		return fmt.Errorf("invalid api_url: unsupported scheme %q", parsed.Scheme)
	}
	c.APIURL = strings.TrimRight(parsed.String(), "/")

	if c.WSURL == "" {
		ws := *parsed
		ws.Scheme = "wss"
		if parsed.Scheme == "http" {
			ws.Scheme = "ws"
		}
		ws.Path = strings.TrimRight(parsed.Path, "/") + "/ws"
		ws.RawQuery = ""
		c.WSURL = ws.String()
	}
	return nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
