package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateScenarioPath(t *testing.T) {
	path := GenerateScenarioPath()

	if !strings.Contains(path, "scenario_") {
		t.Errorf("Path should contain 'scenario_': %s", path)
	}
	if !strings.HasPrefix(path, ScenariosDir) {
		t.Errorf("Path should be in %s: %s", ScenariosDir, path)
	}

	t.Logf("Generated path: %s", path)
}

func TestFindLatestScenario(t *testing.T) {
	old := ScenariosDir
	ScenariosDir = t.TempDir()
	defer func() { ScenariosDir = old }()

	files := []string{
		filepath.Join(ScenariosDir, "scenario_2026-02-12_10-00-00.yaml"),
		filepath.Join(ScenariosDir, "scenario_2026-02-13_01-00-00.yaml"),
		filepath.Join(ScenariosDir, "scenario_2026-02-11_15-30-00.yaml"),
	}

	for i, f := range files {
		if err := os.WriteFile(f, []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}
		// Set different modification times
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(f, modTime, modTime)
	}
	os.Mkdir(filepath.Join(ScenariosDir, "icons"), 0755)

	latest, err := FindLatestScenario()
	if err != nil {
		t.Fatalf("FindLatestScenario failed: %v", err)
	}

	t.Logf("Latest scenario: %s", latest)

	if latest != files[len(files)-1] {
		t.Errorf("Expected latest to be %s, got %s", files[len(files)-1], latest)
	}
}

func TestFindLatestScenarioEmpty(t *testing.T) {
	old := ScenariosDir
	ScenariosDir = t.TempDir()
	defer func() { ScenariosDir = old }()

	if _, err := FindLatestScenario(); err == nil {
		t.Error("Expected error for an empty directory")
	}
}
