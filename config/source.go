package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source supplies the text of IDL files named in a configuration.
type Source interface {
	LoadText(name string) ([]byte, error)
}

// FileSource reads IDL files from disk. Relative names are joined to Dir.
type FileSource struct {
	Dir string
}

func (s FileSource) LoadText(name string) ([]byte, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// MapSource serves IDL text from memory, keyed by the name used in the
// configuration.
type MapSource map[string]string

func (s MapSource) LoadText(name string) ([]byte, error) {
	text, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", name, fs.ErrNotExist)
	}
	return []byte(text), nil
}
