package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bkt_predictor/internal/model"
)

func writeParams(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	cfg := testConfig()
	cfg.BKT.ParamsFile = writeParams(t, `{
		"theme_001": {"transition": 0.15, "guess": 0.2, "slip": 0.1, "prior": 0.1},
		"theme_002": {"transition": 0.12, "guess": 0.25, "slip": 0.08, "prior": 0.2}
	}`)

	s := NewParamsService(cfg)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	p, ok := s.Get("theme_002")
	if !ok {
		t.Fatal("theme_002 should be present")
	}
	assertFloat(t, "transition", p.Transition, 0.12)
	assertFloat(t, "guess", p.Guess, 0.25)
	assertFloat(t, "slip", p.Slip, 0.08)
	assertFloat(t, "prior", p.Prior, 0.2)

	if len(s.All()) != 2 {
		t.Errorf("All() = %d themes, want 2", len(s.All()))
	}
}

func TestLoadMissingFileIsNotFatal(t *testing.T) {
	cfg := testConfig()
	cfg.BKT.ParamsFile = filepath.Join(t.TempDir(), "does-not-exist.json")

	s := NewParamsService(cfg)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() on a missing file should fall back to defaults, got %v", err)
	}
	if len(s.All()) != 0 {
		t.Errorf("store should be empty, has %d themes", len(s.All()))
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	cfg := testConfig()
	cfg.BKT.ParamsFile = writeParams(t, `{not json`)

	s := NewParamsService(cfg)
	if err := s.Load(); err == nil {
		t.Fatal("Load() should fail on invalid JSON")
	}
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	cfg := testConfig()
	s := NewParamsService(cfg)

	p, source := s.Resolve("never-trained")
	if source != SourceDefault {
		t.Errorf("source = %q, want %q", source, SourceDefault)
	}
	assertFloat(t, "transition", p.Transition, cfg.BKT.Transition)
	assertFloat(t, "guess", p.Guess, cfg.BKT.Guess)
	assertFloat(t, "slip", p.Slip, cfg.BKT.Slip)
	assertFloat(t, "prior", p.Prior, cfg.BKT.Prior)
}

func TestUpsertPersistsSnapshot(t *testing.T) {
	cfg := testConfig()
	cfg.BKT.ParamsFile = writeParams(t, `{}`)

	s := NewParamsService(cfg)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	want := model.ThemeParams{Transition: 0.2, Guess: 0.15, Slip: 0.05, Prior: 0.3}
	if err := s.Upsert("theme_new", want); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}

	// A fresh service reading the same file sees the write.
	s2 := NewParamsService(cfg)
	if err := s2.Load(); err != nil {
		t.Fatal(err)
	}
	got, ok := s2.Get("theme_new")
	if !ok {
		t.Fatal("theme_new should survive a reload")
	}
	assertFloat(t, "prior", got.Prior, want.Prior)
}

func TestUpsertRejectedForRemoteStore(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Type = "minio"

	s := NewParamsService(cfg)
	err := s.Upsert("theme", model.ThemeParams{})
	if !errors.Is(err, ErrReadOnlyStore) {
		t.Errorf("Upsert() = %v, want ErrReadOnlyStore", err)
	}
}

func TestReloadPicksUpChanges(t *testing.T) {
	cfg := testConfig()
	cfg.BKT.ParamsFile = writeParams(t, `{"a": {"transition": 0.1, "guess": 0.2, "slip": 0.1, "prior": 0.1}}`)

	s := NewParamsService(cfg)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get("b"); ok {
		t.Fatal("b should not be present yet")
	}

	if err := os.WriteFile(cfg.BKT.ParamsFile, []byte(`{"b": {"transition": 0.1, "guess": 0.2, "slip": 0.1, "prior": 0.1}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}

	if _, ok := s.Get("b"); !ok {
		t.Error("b should be present after reload")
	}
	if _, ok := s.Get("a"); ok {
		t.Error("a should be gone after reload")
	}
}
