package config

import (
	"testing"
	"time"
)

func TestConfig_Timeout(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{name: "empty uses default", value: "", expected: DefaultClientTimeout},
		{name: "valid duration", value: "30s", expected: 30 * time.Second},
		{name: "invalid duration", value: "soon", expected: DefaultClientTimeout},
		{name: "negative duration", value: "-1s", expected: DefaultClientTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ClientTimeout: tt.value}
			if got := cfg.Timeout(); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestConfig_WatchInterval(t *testing.T) {
	cfg := &Config{}
	if got := cfg.WatchInterval(); got != time.Hour {
		t.Errorf("Expected default interval of 1h, got %v", got)
	}

	cfg.Watch.Interval = "15m"
	if got := cfg.WatchInterval(); got != 15*time.Minute {
		t.Errorf("Expected 15m, got %v", got)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.ClientTimeout != DefaultClientTimeout.String() {
		t.Errorf("Expected client_timeout %q, got %q", DefaultClientTimeout.String(), cfg.ClientTimeout)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("Expected default user agent, got %q", cfg.UserAgent)
	}
	if cfg.Metrics.Port != 9090 {
		t.Errorf("Expected metrics port 9090, got %d", cfg.Metrics.Port)
	}
	if cfg.Metrics.Job != "fetchonce" {
		t.Errorf("Expected metrics job 'fetchonce', got %q", cfg.Metrics.Job)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("APP_CLIENT_TIMEOUT", "12s")
	t.Setenv("APP_METRICS_PORT", "9191")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Timeout() != 12*time.Second {
		t.Errorf("Expected timeout 12s from env, got %v", cfg.Timeout())
	}
	if cfg.Metrics.Port != 9191 {
		t.Errorf("Expected metrics port 9191 from env, got %d", cfg.Metrics.Port)
	}
}

func TestGetUserAgent(t *testing.T) {
	if GetUserAgent() == "" {
		t.Error("Expected a non-empty user agent")
	}
}
