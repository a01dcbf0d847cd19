package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.TransferQueueDelay != 500*time.Millisecond {
		t.Fatalf("expected 500ms queue delay, got %s", cfg.TransferQueueDelay)
	}
	if cfg.TransferSettleDelay != time.Second {
		t.Fatalf("expected 1s settle delay, got %s", cfg.TransferSettleDelay)
	}
	if len(cfg.APIKeys) == 0 {
		t.Fatalf("expected demo API keys by default")
	}
	if cfg.DatabaseURL != "" || cfg.RedisURL != "" {
		t.Fatalf("expected optional backends to default empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("API_KEYS", "alpha, beta")
	t.Setenv("TRANSFER_QUEUE_DELAY", "20ms")
	t.Setenv("TRANSFER_SETTLE_DELAY", "40ms")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8081" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if len(cfg.APIKeys) != 2 || cfg.APIKeys[0] != "alpha" || cfg.APIKeys[1] != "beta" {
		t.Fatalf("expected trimmed API keys, got %v", cfg.APIKeys)
	}
	if cfg.TransferQueueDelay != 20*time.Millisecond {
		t.Fatalf("expected 20ms queue delay, got %s", cfg.TransferQueueDelay)
	}
	if cfg.TransferSettleDelay != 40*time.Millisecond {
		t.Fatalf("expected 40ms settle delay, got %s", cfg.TransferSettleDelay)
	}
	if cfg.ShutdownPeriod != 3*time.Second {
		t.Fatalf("expected 3s shutdown period, got %s", cfg.ShutdownPeriod)
	}
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("TRANSFER_QUEUE_DELAY", "not-a-duration")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid queue delay")
	}
}

func TestLoadRejectsNonPositiveDelay(t *testing.T) {
	t.Setenv("TRANSFER_SETTLE_DELAY", "-1s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive settle delay")
	}
}

func TestAddress(t *testing.T) {
	if got := (Config{Port: "3000"}).Address(); got != ":3000" {
		t.Fatalf("expected :3000, got %s", got)
	}
	if got := (Config{Port: ":9000"}).Address(); got != ":9000" {
		t.Fatalf("expected :9000, got %s", got)
	}
}
