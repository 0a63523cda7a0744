package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config carries everything the gateway and the CLI need from the
// environment. Defaults suit local development against a backend on 8181.
type Config struct {
	Addr            string
	BackendURL      string
	UpstreamTimeout time.Duration
	JWTSecret       string

	AnalyticsURL string
	AnalyticsKey string

	SessionFile string
}

func Load() Config {
	return Config{
		Addr:            getenv("HYDROSYS_ADDR", ":8080"),
		BackendURL:      getenv("HYDROSYS_BACKEND_URL", "http://localhost:8181"),
		UpstreamTimeout: parseDuration(getenv("HYDROSYS_UPSTREAM_TIMEOUT", "10s"), 10*time.Second),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AnalyticsURL:    os.Getenv("HYDROSYS_ANALYTICS_URL"),
		AnalyticsKey:    os.Getenv("HYDROSYS_ANALYTICS_KEY"),
		SessionFile:     getenv("HYDROSYS_SESSION_FILE", defaultSessionFile()),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".hydrosys", "session.json")
}
