package pages

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// indexFile is the wrapped form of an index file: {pages: [...]}.
type indexFile struct {
	Pages []Page `yaml:"pages"`
}

// LoadFile reads a page index from a YAML or JSON file. The file may hold
// either a bare list of pages or a mapping with a "pages" key.
func LoadFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page index %s: %w", path, err)
	}
	idx, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing page index %s: %w", path, err)
	}
	return idx, nil
}

// Parse decodes a page index from YAML or JSON bytes.
func Parse(data []byte) (*Index, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrNoPages
	}

	var list []Page
	if trimmed[0] == '[' || trimmed[0] == '-' {
		if err := yaml.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
	} else {
		var wrapped indexFile
		if err := yaml.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		list = wrapped.Pages
	}

	if len(list) == 0 {
		return nil, ErrNoPages
	}
	return NewIndex(list), nil
}
