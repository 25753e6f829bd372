package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestConfigGetters(t *testing.T) {
	v := viper.New()
	v.Set("name", "renewhub")
	v.Set("port", 8080)
	v.Set("enabled", true)
	v.Set("rate", 2.5)
	v.Set("timeout", "5s")
	cfg := New(v)

	if got := cfg.GetString("name"); got != "renewhub" {
		t.Errorf("GetString('name') = %q, want %q", got, "renewhub")
	}
	if got := cfg.GetInt("port"); got != 8080 {
		t.Errorf("GetInt('port') = %d, want %d", got, 8080)
	}
	if !cfg.GetBool("enabled") {
		t.Error("GetBool('enabled') = false, want true")
	}
	if got := cfg.GetFloat64("rate"); got != 2.5 {
		t.Errorf("GetFloat64('rate') = %v, want 2.5", got)
	}
	if got := cfg.GetDuration("timeout"); got != 5*time.Second {
		t.Errorf("GetDuration('timeout') = %v, want 5s", got)
	}
	if !cfg.IsSet("name") || cfg.IsSet("missing") {
		t.Error("IsSet() mismatch")
	}
}

func TestConfigSub(t *testing.T) {
	v := viper.New()
	v.Set("modules.forecast.enabled", false)
	cfg := New(v)

	sub := cfg.Sub("modules.forecast")
	if !sub.IsSet("enabled") || sub.GetBool("enabled") {
		t.Error("sub.GetBool('enabled') should be set and false")
	}

	missing := cfg.Sub("nonexistent")
	if missing == nil {
		t.Fatal("Sub('nonexistent') should return empty Config, not nil")
	}
	if got := missing.GetString("anything"); got != "" {
		t.Errorf("empty config GetString() = %q, want empty", got)
	}
}

func TestNilViper(t *testing.T) {
	cfg := New(nil)
	if got := cfg.GetString("key"); got != "" {
		t.Errorf("nil viper GetString() = %q, want empty", got)
	}
	if cfg.Viper() == nil {
		t.Error("Viper() = nil, want empty instance")
	}
}

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s, err := New(v).Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}

	if s.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Server.Addr() = %q, want 0.0.0.0:8080", s.Server.Addr())
	}
	if s.Server.RateLimit != 20 || s.Server.Burst != 40 {
		t.Errorf("rate limit = %v/%d, want 20/40", s.Server.RateLimit, s.Server.Burst)
	}
	if s.Backend.URL != "http://backend:5000/api" {
		t.Errorf("Backend.URL = %q", s.Backend.URL)
	}
	if s.Backend.Timeout != 10*time.Second {
		t.Errorf("Backend.Timeout = %v, want 10s", s.Backend.Timeout)
	}
	if s.DataSource != DataSourceSample {
		t.Errorf("DataSource = %q, want %q", s.DataSource, DataSourceSample)
	}
	if !v.GetBool("modules.catalog.enabled") {
		t.Error("modules.catalog.enabled default should be true")
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "renewhub.yaml")
	content := []byte("datasource: http\nbackend:\n  url: http://localhost:5000/api\n  timeout: 3s\nserver:\n  port: 9090\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RENEWHUB_SERVER_PORT", "9191")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}

	if s.DataSource != DataSourceHTTP {
		t.Errorf("DataSource = %q, want http", s.DataSource)
	}
	if s.Backend.URL != "http://localhost:5000/api" {
		t.Errorf("Backend.URL = %q", s.Backend.URL)
	}
	if s.Backend.Timeout != 3*time.Second {
		t.Errorf("Backend.Timeout = %v, want 3s", s.Backend.Timeout)
	}
	if s.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want env override 9191", s.Server.Port)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() expected error for missing explicit file")
	}
}

func TestSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"unknown datasource", "datasource", "sqlite"},
		{"port zero", "server.port", 0},
		{"port too large", "server.port", 70000},
		{"empty backend url", "backend.url", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.val)
			if _, err := New(v).Settings(); err == nil {
				t.Errorf("Settings() with %s=%v expected error", tt.key, tt.val)
			}
		})
	}
}
