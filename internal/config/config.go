// Package config handles grain configuration via TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all grain configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Chat       ChatConfig       `toml:"chat"`
	Serve      ServeConfig      `toml:"serve"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	CurrencySymbol string `toml:"currency_symbol"`
	AutoSave       bool   `toml:"auto_save"`
}

// ChatConfig holds completion API settings for the assistant.
type ChatConfig struct {
	Model       string `toml:"model"`
	BaseURL     string `toml:"base_url,omitempty"`
	APIKey      string `toml:"api_key,omitempty"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// ServeConfig holds settings for the chat proxy server.
type ServeConfig struct {
	Addr        string `toml:"addr"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			CurrencySymbol: "$",
			AutoSave:       true,
		},
		Chat: ChatConfig{
			Model:       "gpt-4o-mini",
			TimeoutSecs: 15,
		},
		Serve: ServeConfig{
			Addr:        "127.0.0.1:8484",
			TimeoutSecs: 15,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "grain")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "grain")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetOpenAIAPIKey returns the completion API key from the environment or
// the config file, in that order.
func GetOpenAIAPIKey(cfg Config) string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return cfg.Chat.APIKey
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
