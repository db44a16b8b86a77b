package pages

import "errors"

// ErrNoPages is returned when a page source holds no records.
var ErrNoPages = errors.New("page index is empty")

// Page is one entry of the documentation index.
type Page struct {
	Section string `yaml:"section" json:"section"`
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Depth   int    `yaml:"depth" json:"depth"`
}

// Index is an ordered, read-only sequence of pages.
type Index struct {
	pages []Page
}

// NewIndex copies pages into a new Index, keeping their order.
func NewIndex(pages []Page) *Index {
	cp := make([]Page, len(pages))
	copy(cp, pages)
	return &Index{pages: cp}
}

// All returns every page in index order. Callers must not modify the result.
func (x *Index) All() []Page {
	if x == nil {
		return nil
	}
	return x.pages
}

// Len returns the number of pages.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.pages)
}

// Section returns the pages belonging to section, in index order.
func (x *Index) Section(section string) []Page {
	var out []Page
	for _, p := range x.All() {
		if p.Section == section {
			out = append(out, p)
		}
	}
	return out
}

// Sections returns the distinct sections in order of first appearance.
func (x *Index) Sections() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range x.All() {
		if !seen[p.Section] {
			seen[p.Section] = true
			out = append(out, p.Section)
		}
	}
	return out
}
