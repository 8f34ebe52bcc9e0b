package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(Overrides{EnvFile: "nonexistent.env"})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.HTTPAddr != ":8080" {
			t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
		}
		if cfg.UpstreamTimeout != 20*time.Second {
			t.Errorf("UpstreamTimeout = %v, want 20s", cfg.UpstreamTimeout)
		}
	})

	t.Run("env_vars_read", func(t *testing.T) {
		t.Setenv("HTTP_ADDR", ":9999")
		t.Setenv("UPSTREAM_TIMEOUT", "5s")

		cfg, err := Load(Overrides{EnvFile: "nonexistent.env"})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.HTTPAddr != ":9999" {
			t.Errorf("HTTPAddr = %q, want :9999", cfg.HTTPAddr)
		}
		if cfg.UpstreamTimeout != 5*time.Second {
			t.Errorf("UpstreamTimeout = %v, want 5s", cfg.UpstreamTimeout)
		}
	})

	t.Run("cli_overrides_take_priority", func(t *testing.T) {
		t.Setenv("HTTP_ADDR", ":9999")
		t.Setenv("LOG_LEVEL", "warn")

		cfg, err := Load(Overrides{
			EnvFile:  "nonexistent.env",
			HTTPAddr: ":7070",
			LogLevel: "debug",
		})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.HTTPAddr != ":7070" {
			t.Errorf("HTTPAddr = %q, want :7070", cfg.HTTPAddr)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
		}
	})
}
