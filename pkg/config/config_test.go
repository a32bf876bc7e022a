package config

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

type validatedConfig struct {
	Port int `yaml:"port"`
}

func (c *validatedConfig) Validate() error {
	if c.Port <= 0 {
		return os.ErrInvalid
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_SERVICE_NAME", "patina")
	path := writeFile(t, "name: ${TEST_SERVICE_NAME}\nport: 9000\n")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "patina" || cfg.Port != 9000 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_RunsValidation(t *testing.T) {
	path := writeFile(t, "port: 0\n")
	var cfg validatedConfig
	if err := Load(path, &cfg); err == nil {
		t.Error("invalid config loaded without error")
	}
}

func TestLoad_MissingFileErrors(t *testing.T) {
	var cfg testConfig
	if err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err == nil {
		t.Error("missing file loaded without error")
	}
}

func TestLoadOptional_MissingFileKeepsDefaults(t *testing.T) {
	cfg := validatedConfig{Port: 8080}
	if err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 {
		t.Errorf("defaults mutated: %+v", cfg)
	}
}

func TestLoadOptional_MissingFileStillValidatesDefaults(t *testing.T) {
	cfg := validatedConfig{Port: 0}
	if err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err == nil {
		t.Error("invalid defaults passed validation")
	}
}
