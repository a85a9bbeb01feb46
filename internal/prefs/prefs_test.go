package prefs

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openStore(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)

	store, err := gdata.Open(gdata.Config{AppName: "kimaybe_test"})
	if err != nil {
		t.Fatalf("gdata.Open: %v", err)
	}
	return store
}

func TestDefaults(t *testing.T) {
	p := Default()
	if !p.Animate || p.DisplayInterval != 1 || p.LastHour != 0 {
		t.Errorf("defaults %+v", p)
	}
}

func TestMemoryOnly(t *testing.T) {
	m := NewManager(nil)
	if m.Persistent() {
		t.Errorf("nil store reported persistent")
	}
	if m.ToggleAnimate() {
		t.Errorf("toggle from default must disable animation")
	}
	if err := m.Save(); err != nil {
		t.Errorf("Save without store: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	store := openStore(t)

	m := NewManager(store)
	m.ToggleAnimate()
	m.SetLastHour(5)
	m.Prefs().WindVaneOrigin = false
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again := NewManager(store)
	p := again.Prefs()
	if p.Animate || p.LastHour != 5 || p.WindVaneOrigin {
		t.Errorf("loaded %+v", p)
	}
}

func TestLoadSanitizes(t *testing.T) {
	store := openStore(t)
	data := []byte("animate: true\nlastHour: -3\ndisplayInterval: 0\n")
	if err := store.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		t.Fatal(err)
	}
	p := NewManager(store).Prefs()
	if p.LastHour != 0 || p.DisplayInterval != 1 {
		t.Errorf("not sanitized: %+v", p)
	}
	// не заданные ключи берутся из Default
	if p.Page != "forecast" {
		t.Errorf("page %q", p.Page)
	}
}

func TestLoadBadPayload(t *testing.T) {
	store := openStore(t)
	if err := store.SaveObjectProp(prefsObject, prefsProperty, []byte("animate: [")); err != nil {
		t.Fatal(err)
	}
	m := &Manager{store: store}
	if err := m.Load(); err == nil {
		t.Errorf("broken payload accepted")
	}
	if !m.Prefs().Animate {
		t.Errorf("defaults not restored after failure")
	}
}
