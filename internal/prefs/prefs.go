// Package prefs keeps the user preferences of the forecast display between
// runs.
package prefs

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const AppName = "kimaybe"

const (
	prefsObject   = "prefs"
	prefsProperty = "global"
)

type Preferences struct {
	// Animate enables the slice-sweep transition between hours.
	Animate  bool `yaml:"animate"`
	LastHour int  `yaml:"lastHour"`
	// WindVaneOrigin points the vane where the wind comes from.
	WindVaneOrigin bool `yaml:"windVaneOrigin"`
	// DisplayInterval is the number of hours between forecast slots.
	DisplayInterval int    `yaml:"displayInterval"`
	Page            string `yaml:"page"`
}

func Default() *Preferences {
	return &Preferences{
		Animate:         true,
		WindVaneOrigin:  true,
		DisplayInterval: 1,
		Page:            "forecast",
	}
}

// Manager loads and saves Preferences. A nil gdata manager keeps them in
// memory only.
type Manager struct {
	store *gdata.Manager
	prefs *Preferences
}

// Open creates a gdata backed manager for the application. When storage is
// unavailable the manager falls back to memory.
func Open(appName string) *Manager {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[prefs] storage unavailable: %v (memory only)", err)
		store = nil
	}
	return NewManager(store)
}

func NewManager(store *gdata.Manager) *Manager {
	m := &Manager{store: store, prefs: Default()}
	if err := m.Load(); err != nil {
		log.Printf("[prefs] Warning: %v (using defaults)", err)
	}
	return m
}

func (m *Manager) Prefs() *Preferences { return m.prefs }

// Persistent reports whether Save writes to disk.
func (m *Manager) Persistent() bool { return m.store != nil }

func (m *Manager) Load() error {
	m.prefs = Default()
	if m.store == nil || !m.store.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("failed to load prefs: %w", err)
	}
	loaded := Default()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal prefs: %w", err)
	}
	if loaded.DisplayInterval < 1 {
		loaded.DisplayInterval = 1
	}
	if loaded.LastHour < 0 {
		loaded.LastHour = 0
	}
	m.prefs = loaded
	return nil
}

func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	if err := m.store.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}
	return nil
}

// ToggleAnimate flips the animation switch and returns the new value.
func (m *Manager) ToggleAnimate() bool {
	m.prefs.Animate = !m.prefs.Animate
	return m.prefs.Animate
}

func (m *Manager) SetLastHour(h int) {
	if h < 0 {
		h = 0
	}
	m.prefs.LastHour = h
}
