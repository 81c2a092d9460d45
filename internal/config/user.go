package config

import (
	"fmt"
	"log"
	"maps"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"github.com/san-kum/pdspring/spring"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "pdspring"

	presetsObject   = "presets"
	presetsProperty = "user"
)

// propStore is the part of *gdata.Manager the presets use.
type propStore interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// UserPresets are presets saved by the user across runs. With a nil manager
// they live in memory only.
type UserPresets struct {
	store   propStore
	presets map[string]Preset
}

// OpenUserPresets opens the per-user data store. If it cannot be opened the
// returned store works in memory and the error is reported.
func OpenUserPresets() (*UserPresets, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		up, _ := NewUserPresets(nil)
		return up, fmt.Errorf("open user data: %w", err)
	}
	return NewUserPresets(m)
}

func NewUserPresets(manager *gdata.Manager) (*UserPresets, error) {
	if manager == nil {
		return newUserPresets(nil), nil
	}
	return newUserPresets(manager), nil
}

func newUserPresets(store propStore) *UserPresets {
	up := &UserPresets{
		store:   store,
		presets: make(map[string]Preset),
	}
	if err := up.Load(); err != nil {
		log.Printf("[presets] warning: %v (starting empty)", err)
	}
	return up
}

func (u *UserPresets) Load() error {
	u.presets = make(map[string]Preset)
	if u.store == nil || !u.store.ObjectPropExists(presetsObject, presetsProperty) {
		return nil
	}

	data, err := u.store.LoadObjectProp(presetsObject, presetsProperty)
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	loaded := make(map[string]Preset)
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal presets: %w", err)
	}
	// A stored "null" decodes to a nil map.
	if loaded != nil {
		u.presets = loaded
	}
	return nil
}

func (u *UserPresets) Save() error {
	return u.save(u.presets)
}

func (u *UserPresets) save(presets map[string]Preset) error {
	if u.store == nil {
		return nil
	}

	data, err := yaml.Marshal(presets)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}
	if err := u.store.SaveObjectProp(presetsObject, presetsProperty, data); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}
	return nil
}

// Put stores a validated preset. Built-in names cannot be shadowed.
func (u *UserPresets) Put(name string, p Preset) error {
	if _, builtin := Presets[name]; builtin {
		return fmt.Errorf("preset %q is built in", name)
	}
	sp := spring.PerceptualParams{Duration: p.Duration, Bounce: p.Bounce}
	if err := sp.Validate(); err != nil {
		return err
	}
	next := maps.Clone(u.presets)
	next[name] = p
	if err := u.save(next); err != nil {
		return err
	}
	u.presets = next
	return nil
}

func (u *UserPresets) Delete(name string) error {
	if _, ok := u.presets[name]; !ok {
		return fmt.Errorf("unknown user preset: %s", name)
	}
	next := maps.Clone(u.presets)
	delete(next, name)
	if err := u.save(next); err != nil {
		return err
	}
	u.presets = next
	return nil
}

func (u *UserPresets) Get(name string) *Preset {
	p, ok := u.presets[name]
	if !ok {
		return nil
	}
	return &p
}

func (u *UserPresets) Names() []string {
	names := make([]string, 0, len(u.presets))
	for name := range u.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a built-in preset first, then a user preset. u may be nil.
func Lookup(u *UserPresets, name string) *Preset {
	if p := GetPreset(name); p != nil {
		return p
	}
	if u == nil {
		return nil
	}
	return u.Get(name)
}
