package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `database:
  driver: "sqlite"
  groups:
    - "Butler Library 2"
    - "Butler Library 3"
  sqlite:
    path: "dumps/density.db"
mqtt:
  broker: "tcp://localhost:1883"
  client_id: "ingest"
  topic: "density/dumps/#"
metrics:
  prometheus_enabled: true
  prometheus_addr: ":9102"
chart:
  horizon_points: 48
  step_minutes: 30
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"driver", cfg.Database.Driver, "sqlite"},
		{"sqlite_path", cfg.Database.SQLite.Path, "dumps/density.db"},
		{"groups", len(cfg.Database.Groups), 2},
		{"broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"client_id", cfg.MQTT.ClientID, "ingest"},
		{"topic", cfg.MQTT.Topic, "density/dumps/#"},
		{"prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"prometheus_addr", cfg.Metrics.PrometheusAddr, ":9102"},
		{"horizon_points", cfg.Chart.HorizonPoints, 48},
		{"step_minutes", cfg.Chart.StepMinutes, 30},
		{"window_hours_default", cfg.Chart.WindowHours, 24},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v want %v", c.name, c.got, c.want)
		}
	}
	if got := cfg.Chart.Horizon().Step; got != 30*time.Minute {
		t.Errorf("horizon step: got %v", got)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("database:\n  driver: sqlite\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DENSITY_DATABASE__SQLITE__PATH", "/tmp/override.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Database.SQLite.Path != "/tmp/override.db" {
		t.Errorf("env override not applied: %s", cfg.Database.SQLite.Path)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestLoadRejectsBadDriver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("database:\n  driver: postgres\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
