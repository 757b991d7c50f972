// Package config handles CLI configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	DefaultProfile string             `yaml:"default_profile"`
	Profiles       map[string]Profile `yaml:"profiles"`
}

// Profile holds the settings for one Albert deployment.
type Profile struct {
	BaseURL        string   `yaml:"base_url,omitempty"`
	APIKeyRef      string   `yaml:"api_key_ref,omitempty"`
	Timeout        Duration `yaml:"timeout,omitempty"`
	ChatModel      string   `yaml:"chat_model,omitempty"`
	EmbeddingModel string   `yaml:"embedding_model,omitempty"`
}

// Duration is a time.Duration written as "45s" or "2m" in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q: %w", node.Line, s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	if d == 0 {
		return "", nil
	}
	return time.Duration(d).String(), nil
}

// Dir returns the per-user Albert directory:
// - macOS/Linux: ~/.albert
// - Windows: %USERPROFILE%\.albert
func Dir() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return ".albert"
	}

	return filepath.Join(homeDir, ".albert")
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Profiles: make(map[string]Profile),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}

	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Profile returns the named profile, or the default profile when name is
// empty. The second value is the resolved profile name; the third is false
// when no such profile is configured.
func (c *Config) Profile(name string) (Profile, string, bool) {
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" || c.Profiles == nil {
		return Profile{}, name, false
	}
	p, ok := c.Profiles[name]
	return p, name, ok
}

// KeyRef returns the keystore entry holding this profile's API key.
// It falls back to the profile name, then to "albert".
func (p Profile) KeyRef(profileName string) string {
	if p.APIKeyRef != "" {
		return p.APIKeyRef
	}
	if profileName != "" {
		return profileName
	}
	return "albert"
}
