package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ivlev/kimaybe/internal/pdc"
)

// FileSource reads icons from disk relative to a base directory and keeps
// every decoded icon in memory.
type FileSource struct {
	base  string
	paths []string

	mu    sync.Mutex
	cache map[string]*pdc.Image
}

// NewFileSource opens a directory of icons, or a single icon file whose
// directory becomes the base for relative references.
func NewFileSource(path string) (*FileSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	s := &FileSource{cache: make(map[string]*pdc.Image)}
	if !fi.IsDir() {
		s.base = filepath.Dir(path)
		s.paths = []string{filepath.Base(path)}
		return s, nil
	}

	s.base = path
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsIcon(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		s.paths = append(s.paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(s.paths)
	return s, nil
}

func (s *FileSource) Base() string { return s.base }

// List returns the icon references found when the source was opened.
func (s *FileSource) List() []string {
	return append([]string(nil), s.paths...)
}

func (s *FileSource) Load(ref string) (*pdc.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if img, ok := s.cache[ref]; ok {
		return img.Clone(), nil
	}
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.base, filepath.FromSlash(ref))
	}
	img, err := readIcon(path)
	if err != nil {
		return nil, fmt.Errorf("icon %s: %w", ref, err)
	}
	s.cache[ref] = img
	return img.Clone(), nil
}

func (s *FileSource) Close() error {
	s.mu.Lock()
	s.cache = make(map[string]*pdc.Image)
	s.mu.Unlock()
	return nil
}
