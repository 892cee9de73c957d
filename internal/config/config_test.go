package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	yaml := `
server:
  port: "9001"
  mode: debug

jwt:
  secret: unit-test-secret
  expire_hours: 24

bkt:
  guess: 0.25
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfigDir(t)

	t.Run("yaml values and defaults", func(t *testing.T) {
		cfg, err := LoadConfig(dir)
		if err != nil {
			t.Fatalf("LoadConfig() failed: %v", err)
		}
		if cfg.Server.Port != "9001" {
			t.Errorf("port = %q, want 9001", cfg.Server.Port)
		}
		if cfg.BKT.Guess != 0.25 {
			t.Errorf("guess = %v, want the yaml value 0.25", cfg.BKT.Guess)
		}
		if cfg.BKT.Transition != 0.15 {
			t.Errorf("transition = %v, want the default 0.15", cfg.BKT.Transition)
		}
		if cfg.BKT.TargetSuccess != 0.70 {
			t.Errorf("target_success = %v, want the default 0.70", cfg.BKT.TargetSuccess)
		}
		if cfg.JWT.ExpireTime != 24*time.Hour {
			t.Errorf("expire = %v, want 24h", cfg.JWT.ExpireTime)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("BKT_T", "0.3")
		t.Setenv("BKT_PARAMS_JSON", "/data/params.json")
		t.Setenv("SERVER_PORT", "7777")

		cfg, err := LoadConfig(dir)
		if err != nil {
			t.Fatalf("LoadConfig() failed: %v", err)
		}
		if cfg.BKT.Transition != 0.3 {
			t.Errorf("transition = %v, want the BKT_T override 0.3", cfg.BKT.Transition)
		}
		if cfg.BKT.ParamsFile != "/data/params.json" {
			t.Errorf("params_file = %q, want the BKT_PARAMS_JSON override", cfg.BKT.ParamsFile)
		}
		if cfg.Server.Port != "7777" {
			t.Errorf("port = %q, want the SERVER_PORT override", cfg.Server.Port)
		}
	})

	t.Run("release mode requires a long secret", func(t *testing.T) {
		t.Setenv("SERVER_MODE", "release")

		if _, err := LoadConfig(dir); err == nil {
			t.Error("LoadConfig() should reject a short JWT secret in release mode")
		}
	})
}
