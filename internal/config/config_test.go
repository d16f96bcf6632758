// ABOUTME: Tests for pyramid configuration management.
// ABOUTME: Covers defaults, config files, environment overrides, validation and path expansion.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points XDG_CONFIG_HOME and XDG_DATA_HOME at a temp dir and
// moves the working directory there so no stray .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Chdir(tmpDir)
	return tmpDir
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if want := filepath.Join(tmpDir, "data", "pyramid"); cfg.DataDir != want {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, want)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want info", cfg.Logger.Level)
	}
	if cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("Security.RateLimitWindow = %v, want 1m", cfg.Security.RateLimitWindow)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want true")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PYRAMID_DATA_DIR", "/tmp/pyramid-env")
	t.Setenv("PYRAMID_SERVER_PORT", "9191")
	t.Setenv("PYRAMID_LOGGER_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DataDir != "/tmp/pyramid-env" {
		t.Errorf("DataDir = %q, want /tmp/pyramid-env", cfg.DataDir)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("Logger.Level = %q, want debug", cfg.Logger.Level)
	}
}

func TestLoadConfigFileFromConfigDir(t *testing.T) {
	tmpDir := isolate(t)

	dir := filepath.Join(tmpDir, "config", "pyramid")
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `{"data_dir": "/srv/pyramid", "server": {"port": 7000}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DataDir != "/srv/pyramid" {
		t.Errorf("DataDir = %q, want /srv/pyramid", cfg.DataDir)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	tmpDir := isolate(t)

	_, err := Load(filepath.Join(tmpDir, "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadExplicitYAMLFile(t *testing.T) {
	tmpDir := isolate(t)

	path := filepath.Join(tmpDir, "pyramid.yaml")
	content := "logger:\n  format: json\nmetrics:\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logger.Format != "json" {
		t.Errorf("Logger.Format = %q, want json", cfg.Logger.Format)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DataDir: "/tmp/p",
			Server:  ServerConfig{Port: 8080},
			Logger:  LoggerConfig{Level: "info", Format: "console", Output: "stdout"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing data dir", func(c *Config) { c.DataDir = "" }, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad level", func(c *Config) { c.Logger.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Logger.Format = "xml" }, true},
		{"file without filename", func(c *Config) { c.Logger.Output = "file" }, true},
		{"stderr output", func(c *Config) { c.Logger.Output = "stderr" }, false},
		{"unknown output", func(c *Config) { c.Logger.Output = "syslog" }, true},
		{"negative rate limit", func(c *Config) { c.Security.RateLimitRequests = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "0.0.0.0", Port: 8080}
	if got := s.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/pyramid", filepath.Join(home, "data/pyramid")},
		{"data/pyramid", "data/pyramid"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDefaultDataDirXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	if got := DefaultDataDir(); got != "/xdg/data/pyramid" {
		t.Errorf("DefaultDataDir() = %q, want /xdg/data/pyramid", got)
	}
}
