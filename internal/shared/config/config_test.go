package config

import (
	"strings"
	"testing"
)

// clearEnv blanks every variable Load reads so ambient environment
// can't leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "HOST", "ALLOWED_HOSTS",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"JWT_SECRET",
		"TLS_ENABLED", "TLS_CERT_PATH", "TLS_KEY_PATH", "TLS_REDIRECT_HTTP",
		"OTEL_ENABLED", "OTEL_SERVICE_NAME", "OTEL_EXPORTER_ENDPOINT", "METRICS_PORT",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host 0.0.0.0, got %q", cfg.Server.Host)
	}
	if len(cfg.Server.AllowedHosts) != 0 {
		t.Errorf("expected no allowed hosts by default, got %v", cfg.Server.AllowedHosts)
	}
	if cfg.Database.Port != 5432 || cfg.Database.Host != "localhost" {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.TLS.Enabled || cfg.Telemetry.Enabled {
		t.Error("TLS and telemetry must default to disabled")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("error should name the missing variable, got %q", err)
	}
}

func TestLoadInvalidDBPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric DB_PORT")
	}
}

func TestLoadAllowedHosts(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ALLOWED_HOSTS", " example.com, api.example.com ,,localhost ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := []string{"example.com", "api.example.com", "localhost"}
	if len(cfg.Server.AllowedHosts) != len(want) {
		t.Fatalf("expected %d hosts, got %v", len(want), cfg.Server.AllowedHosts)
	}
	for i, host := range want {
		if cfg.Server.AllowedHosts[i] != host {
			t.Errorf("host[%d] = %q, want %q", i, cfg.Server.AllowedHosts[i], host)
		}
	}
}

func TestLoadTLSRequiresPaths(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TLS_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when TLS is enabled without cert paths")
	}

	t.Setenv("TLS_CERT_PATH", "/etc/certs/server.crt")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when TLS key path is missing")
	}

	t.Setenv("TLS_KEY_PATH", "/etc/certs/server.key")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed with both paths set: %v", err)
	}
	if !cfg.TLS.Enabled {
		t.Error("expected TLS enabled")
	}
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		value        string
		defaultValue bool
		want         bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"", true, true},
		{"", false, false},
		{"garbage", true, true},
		{"garbage", false, false},
	}

	for _, tt := range tests {
		t.Setenv("TEST_BOOL", tt.value)
		if got := getBoolEnv("TEST_BOOL", tt.defaultValue); got != tt.want {
			t.Errorf("getBoolEnv(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
		}
	}
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host: "db.internal", Port: 5433, User: "app",
		Password: "s3cret", DBName: "ledger", SSLMode: "require",
	}

	got := db.ConnectionString()
	want := "host=db.internal port=5433 user=app password=s3cret dbname=ledger sslmode=require"
	if got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
