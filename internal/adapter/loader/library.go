package loader

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Library lists the pre-existing documents available for ingestion.
type Library struct {
	dir      string
	patterns []string
}

func NewLibrary(dir string, patterns []string) *Library {
	if len(patterns) == 0 {
		patterns = []string{"**/*.pdf"}
	}
	return &Library{dir: dir, patterns: patterns}
}

// Entry describes one document in the library.
type Entry struct {
	Name string
	Path string
	Size int64
}

// List returns the matching documents sorted by name. A missing
// library directory yields an empty list, not an error.
func (l *Library) List() ([]Entry, error) {
	root, err := filepath.Abs(l.dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var entries []Entry

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if l.matches(relPath) {
			entries = append(entries, Entry{
				Name: relPath,
				Path: path,
				Size: info.Size(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Resolve finds a library entry by its relative name.
func (l *Library) Resolve(name string) (Entry, bool, error) {
	entries, err := l.List()
	if err != nil {
		return Entry{}, false, err
	}
	for _, e := range entries {
		if e.Name == name {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

func (l *Library) matches(path string) bool {
	for _, pattern := range l.patterns {
		matched, err := doublestar.Match(pattern, filepath.ToSlash(path))
		if err == nil && matched {
			return true
		}
	}
	return false
}
