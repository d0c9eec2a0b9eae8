package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openclaw/qrgen/qr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	if cfg.Port != want.Port || cfg.LogLevel != want.LogLevel || cfg.Defaults != want.Defaults {
		t.Fatalf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
port: 9000
log_level: debug
max_logo_bytes: 1024
read_timeout: 5s
defaults:
  module_size: 6
  border: 2
  foreground: "#112233"
  background: "#ffffff"
  escape: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 || cfg.LogLevel != "debug" || cfg.MaxLogoBytes != 1024 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ReadTimeout.Duration != 5*time.Second {
		t.Fatalf("ReadTimeout = %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout.Duration != 60*time.Second {
		t.Fatalf("WriteTimeout should keep its default, got %v", cfg.WriteTimeout)
	}

	opts, err := cfg.Defaults.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.ModuleSize != 6 || opts.Border != 2 || !opts.Escape || qr.HexColor(opts.Foreground) != "#112233" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "port: 9000\ndefaults:\n  module_size: 6\n")
	t.Setenv("QRGEN_PORT", "9100")
	t.Setenv("QRGEN_MODULE_SIZE", "12")
	t.Setenv("QRGEN_BACKGROUND", "#eeeeee")
	t.Setenv("QRGEN_ESCAPE", "yes")
	t.Setenv("QRGEN_WRITE_TIMEOUT", "2m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("Port = %d, want 9100", cfg.Port)
	}
	if cfg.Defaults.ModuleSize != 12 || cfg.Defaults.Background != "#eeeeee" || !cfg.Defaults.Escape {
		t.Fatalf("unexpected defaults: %+v", cfg.Defaults)
	}
	if cfg.WriteTimeout.Duration != 2*time.Minute {
		t.Fatalf("WriteTimeout = %v", cfg.WriteTimeout)
	}
}

func TestLoadRejectsBadDefaults(t *testing.T) {
	tests := map[string]string{
		"module size": "defaults:\n  module_size: 40\n",
		"border":      "defaults:\n  border: 0\n",
		"colour":      "defaults:\n  foreground: purple\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "read_timeout: forever\n")); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
