package director

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/kimaybe/internal/pdc"
)

// WriteScenario writes a scenario to a YAML file
func WriteScenario(scenario *Scenario, path string) error {
	data, err := yaml.Marshal(scenario)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadScenario reads and validates a scenario from a YAML file
func ReadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &scenario, nil
}

// WriteIcons stores icons under dir; the extension of each name picks the
// format (.pdc binary, .yaml text).
func WriteIcons(dir string, icons map[string]*pdc.Image) error {
	for name, img := range icons {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		var err error
		switch strings.ToLower(filepath.Ext(name)) {
		case ".pdc":
			err = pdc.WriteFile(path, img)
		case ".yaml", ".yml":
			err = pdc.SaveYAML(path, img)
		default:
			err = fmt.Errorf("unknown icon format: %s", name)
		}
		if err != nil {
			return fmt.Errorf("icon %s: %w", name, err)
		}
	}
	return nil
}
