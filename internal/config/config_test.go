package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/pdspring/internal/dynamo"
	"github.com/san-kum/pdspring/spring"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Duration != 0.8 {
		t.Errorf("expected duration 0.8, got %f", cfg.Duration)
	}
	if cfg.Bounce != 0.3 {
		t.Errorf("expected bounce 0.3, got %f", cfg.Bounce)
	}
	if cfg.Engine != "closed" {
		t.Errorf("expected engine closed, got %s", cfg.Engine)
	}
	if cfg.Tween.Repeat != 100 {
		t.Errorf("expected repeat 100, got %d", cfg.Tween.Repeat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spring.yaml")
	data := []byte("duration: 1.5\nbounce: -0.25\nsampling:\n  dt: 0.02\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Duration != 1.5 || cfg.Bounce != -0.25 {
		t.Errorf("expected (1.5, -0.25), got (%f, %f)", cfg.Duration, cfg.Bounce)
	}
	if cfg.Sampling.Dt != 0.02 {
		t.Errorf("expected dt 0.02, got %f", cfg.Sampling.Dt)
	}
	if cfg.Sampling.Span != dynamo.DefaultConfig().Span {
		t.Errorf("expected default span to survive, got %f", cfg.Sampling.Span)
	}
	if cfg.Tween.To != DefaultTo {
		t.Errorf("expected default tween target, got %f", cfg.Tween.To)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spring.yaml")
	cfg := DefaultConfig()
	cfg.Bounce = 0.6
	cfg.Engine = "ode"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded := DefaultConfig()
	if err := LoadInto(path, loaded); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Bounce != 0.6 || loaded.Engine != "ode" {
		t.Errorf("unexpected round trip: %+v", loaded)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := LoadInto(filepath.Join(t.TempDir(), "nope.yaml"), DefaultConfig()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bounce = 3
	if err := cfg.Validate(); !errors.Is(err, spring.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Sampling.Dt = 0
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidSampling) {
		t.Errorf("expected ErrInvalidSampling, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Demo.FPS = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero fps")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("snappy")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.Bounce != 0.15 {
		t.Errorf("expected bounce 0.15, got %f", p.Bounce)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		p := GetPreset(name)
		if _, err := spring.New(p.Duration, p.Bounce); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(*GetPreset("flattened"))
	if cfg.Bounce != -0.5 || cfg.Duration != 0.8 {
		t.Errorf("preset not applied: %+v", cfg)
	}
}

func TestLoadIntoKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("velocity: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Apply(*GetPreset("snappy"))
	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Duration != 0.5 || cfg.Bounce != 0.15 {
		t.Errorf("expected preset values to survive, got %f/%f", cfg.Duration, cfg.Bounce)
	}
	if cfg.Velocity != 2 {
		t.Errorf("expected velocity 2, got %f", cfg.Velocity)
	}
}

func TestLoadIntoRejectsInfiniteSpan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("sampling:\n  span: .inf\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidSampling) {
		t.Errorf("expected ErrInvalidSampling, got %v", err)
	}
}
