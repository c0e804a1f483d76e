package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
}

func TestLoadConfig_DefaultsApplied(t *testing.T) {
	writeConfig(t, `
http:
  addr: ":8080"
grpc:
  addr: ":9090"
postgres:
  dsn: "postgres://u:p@localhost:5432/db"
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Logging.Service != "joyroom" {
		t.Fatalf("default service: got %q", cfg.Logging.Service)
	}
	if cfg.Logging.Env != "dev" || cfg.Logging.Backend != "std" {
		t.Fatalf("logging defaults: %+v", cfg.Logging)
	}
	if cfg.Relay.MaxFrameBytes != 1<<20 {
		t.Fatalf("relay frame default: got %d", cfg.Relay.MaxFrameBytes)
	}
	if got := cfg.Relay.PingIntervalOr(15 * time.Second); got != 15*time.Second {
		t.Fatalf("ping default: got %v", got)
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	writeConfig(t, `
http:
  addr: ":8080"
grpc:
  addr: ":9090"
`)

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing postgres.dsn")
	}
}

func TestRelay_PingIntervalParses(t *testing.T) {
	r := Relay{PingInterval: "30s"}
	if got := r.PingIntervalOr(15 * time.Second); got != 30*time.Second {
		t.Fatalf("got %v", got)
	}
	r = Relay{PingInterval: "bogus"}
	if got := r.PingIntervalOr(15 * time.Second); got != 15*time.Second {
		t.Fatalf("fallback: got %v", got)
	}
}
