// fightclub/config/config_test.go
package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	conf, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if conf.HTTP.Port != "3000" {
		t.Errorf("Default port = %q, want 3000", conf.HTTP.Port)
	}
	if conf.HTTP.Environment != "development" {
		t.Errorf("Default environment = %q, want development", conf.HTTP.Environment)
	}
	if conf.S3.Enabled {
		t.Error("S3 should be disabled by default")
	}
	if conf.RateLimit.Burst != 100 {
		t.Errorf("Default rate burst = %d, want 100", conf.RateLimit.Burst)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FORUM_PORT", "8080")
	t.Setenv("FORUM_ENV", "production")
	t.Setenv("FORUM_JWT_SECRET", "override-secret")
	t.Setenv("FORUM_SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("FORUM_RATE_BURST", "5")

	conf, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if conf.HTTP.Port != "8080" {
		t.Errorf("Port = %q, want 8080", conf.HTTP.Port)
	}
	if conf.HTTP.Environment != "production" {
		t.Errorf("Environment = %q, want production", conf.HTTP.Environment)
	}
	if conf.Auth.JWTSecret != "override-secret" {
		t.Errorf("JWTSecret not overridden")
	}
	if conf.HTTP.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", conf.HTTP.ShutdownTimeout)
	}
	if conf.RateLimit.Burst != 5 {
		t.Errorf("Rate burst = %d, want 5", conf.RateLimit.Burst)
	}
}
