// Package config handles configuration loading and validation for prefsctl
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/iiroan/prefsctl/internal/prefs"
)

// Environment variables read by ApplyEnv
const (
	EnvConfig          = "PREFSCTL_CONFIG"
	EnvPrefs           = "PREFSCTL_PREFS"
	EnvLanguage        = "PREFSCTL_LANGUAGE"
	EnvKeyringService  = "PREFSCTL_KEYRING_SERVICE"
	EnvKeyringDisabled = "PREFSCTL_KEYRING_DISABLED"
)

const appDirName = "prefsctl"

// Config represents the main configuration for prefsctl
type Config struct {
	// Where the preferences document lives
	PrefsPath string `yaml:"prefs_path"`

	// Language reported when none has been chosen yet
	DefaultLanguage string `yaml:"default_language"`

	// Languages offered by the settings screen
	Languages []string `yaml:"languages"`

	Keyring KeyringConfig `yaml:"keyring"`

	UI UIConfig `yaml:"ui"`
}

// KeyringConfig holds credential storage settings
type KeyringConfig struct {
	Service  string `yaml:"service"`
	Disabled bool   `yaml:"disabled"`
}

// UIConfig holds terminal presentation settings
type UIConfig struct {
	Dense   bool `yaml:"dense"`
	NoColor bool `yaml:"no_color"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *Config {
	return &Config{
		PrefsPath:       defaultPrefsPath(),
		DefaultLanguage: prefs.DefaultLanguage,
		Languages:       []string{"en", "fr", "de", "es", "it", "pt", "ja"},
		Keyring: KeyringConfig{
			Service: prefs.DefaultKeyringService,
		},
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from PREFSCTL_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvPrefs); v != "" {
		c.PrefsPath = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		c.DefaultLanguage = v
	}
	if v := os.Getenv(EnvKeyringService); v != "" {
		c.Keyring.Service = v
	}
	if v := os.Getenv(EnvKeyringDisabled); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvKeyringDisabled, err)
		}
		c.Keyring.Disabled = disabled
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.PrefsPath, validation.Required),
		validation.Field(&c.DefaultLanguage, validation.Required),
	); err != nil {
		return err
	}
	if c.Keyring.Disabled {
		return nil
	}
	return validation.ValidateStruct(&c.Keyring,
		validation.Field(&c.Keyring.Service, validation.Required),
	)
}

// LanguageOptions returns the configured languages with current included
func (c *Config) LanguageOptions(current string) []string {
	out := make([]string, 0, len(c.Languages)+1)
	seen := make(map[string]bool)
	for _, lang := range c.Languages {
		lang = strings.TrimSpace(lang)
		if lang == "" || seen[lang] {
			continue
		}
		seen[lang] = true
		out = append(out, lang)
	}
	if current != "" && !seen[current] {
		out = append(out, current)
	}
	return out
}

// Vault returns the credential vault the configuration asks for
func (c *Config) Vault() prefs.Vault {
	if c.Keyring.Disabled {
		return prefs.NopVault{}
	}
	return prefs.NewKeyringVault(c.Keyring.Service)
}

// GetConfigPath returns the path to config.yaml
func GetConfigPath() (string, error) {
	if v := os.Getenv(EnvConfig); v != "" {
		return v, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, appDirName, "config.yaml"), nil
}

// LoadDefault loads configuration from the default location and applies env overrides
func LoadDefault() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", appDirName, "preferences.yaml")
	}
	return filepath.Join(dir, appDirName, "preferences.yaml")
}
