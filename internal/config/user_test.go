package config

import (
	"errors"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestManager(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("failed to open gdata manager: %v", err)
	}
	return m
}

func TestUserPresets_InMemory(t *testing.T) {
	up, err := NewUserPresets(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := up.Put("mine", Preset{Duration: 0.4, Bounce: 0.2}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if p := up.Get("mine"); p == nil || p.Duration != 0.4 {
		t.Errorf("expected stored preset, got %+v", p)
	}
	if err := up.Delete("mine"); err != nil {
		t.Errorf("delete failed: %v", err)
	}
	if up.Get("mine") != nil {
		t.Error("expected preset to be gone")
	}
	if err := up.Delete("mine"); err == nil {
		t.Error("expected error deleting missing preset")
	}
}

func TestUserPresets_RejectsInvalid(t *testing.T) {
	up, _ := NewUserPresets(nil)

	if err := up.Put("broken", Preset{Duration: 0, Bounce: 0}); err == nil {
		t.Error("expected error for zero duration")
	}
	if err := up.Put("snappy", Preset{Duration: 1, Bounce: 0}); err == nil {
		t.Error("expected error shadowing a built-in preset")
	}
}

func TestUserPresets_Persist(t *testing.T) {
	m := openTestManager(t, "pdspring_test_presets")

	first, err := NewUserPresets(m)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := first.Put("hero", Preset{Duration: 0.6, Bounce: 0.25, Description: "hero card"}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	second, err := NewUserPresets(m)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	p := second.Get("hero")
	if p == nil {
		t.Fatal("expected persisted preset")
	}
	if p.Bounce != 0.25 || p.Description != "hero card" {
		t.Errorf("unexpected preset %+v", p)
	}
	if names := second.Names(); len(names) != 1 || names[0] != "hero" {
		t.Errorf("expected [hero], got %v", names)
	}
}

func TestLookup(t *testing.T) {
	up, _ := NewUserPresets(nil)
	_ = up.Put("custom", Preset{Duration: 2, Bounce: 0})

	if p := Lookup(up, "bouncy"); p == nil || p.Bounce != 0.3 {
		t.Errorf("expected built-in bouncy, got %+v", p)
	}
	if p := Lookup(up, "custom"); p == nil || p.Duration != 2 {
		t.Errorf("expected user preset, got %+v", p)
	}
	if Lookup(nil, "custom") != nil {
		t.Error("expected nil without a user store")
	}
}

type memProps struct {
	data    map[string][]byte
	saveErr error
}

func (m *memProps) ObjectPropExists(object, prop string) bool {
	_, ok := m.data[object+"/"+prop]
	return ok
}

func (m *memProps) LoadObjectProp(object, prop string) ([]byte, error) {
	return m.data[object+"/"+prop], nil
}

func (m *memProps) SaveObjectProp(object, prop string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[object+"/"+prop] = data
	return nil
}

func TestUserPresets_NullBlob(t *testing.T) {
	store := &memProps{data: map[string][]byte{presetsObject + "/" + presetsProperty: []byte("null\n")}}
	up := newUserPresets(store)

	if err := up.Put("after-null", Preset{Duration: 0.5, Bounce: 0.1}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if up.Get("after-null") == nil {
		t.Error("expected preset to be stored")
	}
}

func TestUserPresets_FailedSaveKeepsState(t *testing.T) {
	store := &memProps{data: map[string][]byte{}}
	up := newUserPresets(store)
	if err := up.Put("kept", Preset{Duration: 0.5, Bounce: 0.1}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	store.saveErr = errors.New("disk full")

	if err := up.Put("lost", Preset{Duration: 0.7, Bounce: 0}); err == nil {
		t.Error("expected put to fail")
	}
	if up.Get("lost") != nil {
		t.Error("failed put should not change the presets")
	}

	if err := up.Delete("kept"); err == nil {
		t.Error("expected delete to fail")
	}
	if up.Get("kept") == nil {
		t.Error("failed delete should keep the preset")
	}
}
