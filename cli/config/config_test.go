package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/agent")
	t.Setenv("USERPROFILE", "/home/agent")

	path := DefaultConfigPath()

	if filepath.Base(path) != "config.yaml" {
		t.Errorf("DefaultConfigPath() = %q, should end with config.yaml", path)
	}
	if filepath.Base(filepath.Dir(path)) != ".albert" {
		t.Errorf("DefaultConfigPath() = %q, should be in .albert directory", path)
	}
	if !strings.HasPrefix(path, "/home/agent") {
		t.Errorf("DefaultConfigPath() = %q, should be under the home directory", path)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, want nil for missing file", err)
	}

	if cfg.DefaultProfile != "" {
		t.Errorf("DefaultProfile = %q, want empty", cfg.DefaultProfile)
	}
	if cfg.Profiles == nil {
		t.Error("Profiles map is nil")
	}
}

func TestLoadConfigValid(t *testing.T) {
	content := `
default_profile: etalab

profiles:
  etalab:
    base_url: https://albert.api.etalab.gouv.fr
    api_key_ref: etalab_key
    timeout: 45s
    chat_model: albert-large
    embedding_model: embeddings-small
  local:
    base_url: http://localhost:8000
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DefaultProfile != "etalab" {
		t.Errorf("DefaultProfile = %q, want etalab", cfg.DefaultProfile)
	}
	if len(cfg.Profiles) != 2 {
		t.Fatalf("len(Profiles) = %d, want 2", len(cfg.Profiles))
	}

	p, name, ok := cfg.Profile("")
	if !ok || name != "etalab" {
		t.Fatalf("Profile(\"\") = %q, %v", name, ok)
	}
	if p.BaseURL != "https://albert.api.etalab.gouv.fr" {
		t.Errorf("BaseURL = %q", p.BaseURL)
	}
	if time.Duration(p.Timeout) != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", time.Duration(p.Timeout))
	}
	if p.ChatModel != "albert-large" || p.EmbeddingModel != "embeddings-small" {
		t.Errorf("models = %q, %q", p.ChatModel, p.EmbeddingModel)
	}
	if p.KeyRef(name) != "etalab_key" {
		t.Errorf("KeyRef() = %q, want etalab_key", p.KeyRef(name))
	}

	local, name, ok := cfg.Profile("local")
	if !ok {
		t.Fatal("Profile(local) not found")
	}
	if local.KeyRef(name) != "local" {
		t.Errorf("KeyRef() = %q, want local (profile name fallback)", local.KeyRef(name))
	}
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "profiles:\n  x:\n    timeout: soon\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() should reject an invalid duration")
	}
	if !strings.Contains(err.Error(), "soon") {
		t.Errorf("error = %v, should quote the bad value", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("profiles: [unclosed"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should fail on invalid YAML")
	}
}

func TestProfileMissing(t *testing.T) {
	cfg := &Config{}

	if _, _, ok := cfg.Profile(""); ok {
		t.Error("Profile(\"\") on an empty config should report false")
	}
	if _, name, ok := cfg.Profile("ghost"); ok || name != "ghost" {
		t.Errorf("Profile(ghost) = %q, %v", name, ok)
	}
	if got := (Profile{}).KeyRef(""); got != "albert" {
		t.Errorf("KeyRef(\"\") = %q, want albert", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{
		DefaultProfile: "etalab",
		Profiles: map[string]Profile{
			"etalab": {BaseURL: "https://albert.example", Timeout: Duration(2 * time.Minute)},
		},
	}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if time.Duration(loaded.Profiles["etalab"].Timeout) != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", time.Duration(loaded.Profiles["etalab"].Timeout))
	}
}
