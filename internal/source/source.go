// Package source loads vector icons referenced by scenarios.
package source

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/ivlev/kimaybe/internal/pdc"
)

var ErrUnknownFormat = errors.New("source: unknown icon format")

type Source interface {
	// Load returns a private copy of the icon at ref.
	Load(ref string) (*pdc.Image, error)
	List() []string
	Close() error
}

// IsIcon reports whether name has an icon file extension.
func IsIcon(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdc", ".yaml", ".yml":
		return true
	}
	return false
}

func readIcon(path string) (*pdc.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdc":
		return pdc.ReadFile(path)
	case ".yaml", ".yml":
		return pdc.LoadYAML(path)
	}
	return nil, ErrUnknownFormat
}
