package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HYDROSYS_ADDR", "HYDROSYS_BACKEND_URL", "HYDROSYS_UPSTREAM_TIMEOUT",
		"JWT_SECRET", "HYDROSYS_ANALYTICS_URL", "HYDROSYS_ANALYTICS_KEY", "HYDROSYS_SESSION_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.BackendURL != "http://localhost:8181" {
		t.Fatalf("backend url = %q", cfg.BackendURL)
	}
	if cfg.UpstreamTimeout != 10*time.Second {
		t.Fatalf("timeout = %v", cfg.UpstreamTimeout)
	}
	if cfg.JWTSecret != "" || cfg.AnalyticsURL != "" {
		t.Fatalf("secrets should stay empty without env: %+v", cfg)
	}
	if cfg.SessionFile == "" {
		t.Fatal("session file should always have a default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HYDROSYS_ADDR", ":9999")
	t.Setenv("HYDROSYS_BACKEND_URL", "http://backend:8181")
	t.Setenv("HYDROSYS_UPSTREAM_TIMEOUT", "3s")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HYDROSYS_SESSION_FILE", "/tmp/session.json")

	cfg := Load()
	if cfg.Addr != ":9999" || cfg.BackendURL != "http://backend:8181" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.UpstreamTimeout != 3*time.Second {
		t.Fatalf("timeout = %v", cfg.UpstreamTimeout)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("jwt secret = %q", cfg.JWTSecret)
	}
	if cfg.SessionFile != "/tmp/session.json" {
		t.Fatalf("session file = %q", cfg.SessionFile)
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("HYDROSYS_UPSTREAM_TIMEOUT", "not-a-duration")
	cfg := Load()
	if cfg.UpstreamTimeout != 10*time.Second {
		t.Fatalf("timeout = %v, want the default", cfg.UpstreamTimeout)
	}
}
