package pages

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PartialExtensions lists the partial file types, in lookup preference.
var PartialExtensions = []string{".html", ".md"}

// FindPartial returns the path inside fsys of the partial document for
// (section, id): section/id.html, falling back to section/id.md.
// It returns an error wrapping fs.ErrNotExist when neither exists.
func FindPartial(fsys fs.FS, section, id string) (string, error) {
	if !validSegment(section) || !validSegment(id) {
		return "", fmt.Errorf("partial %s/%s: %w", section, id, fs.ErrNotExist)
	}

	exts := make([]string, len(PartialExtensions))
	for i, ext := range PartialExtensions {
		exts[i] = strings.TrimPrefix(ext, ".")
	}
	pattern := path.Join(escapeMeta(section), escapeMeta(id)) +
		".{" + strings.Join(exts, ",") + "}"

	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return "", fmt.Errorf("globbing partial %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("partial %s/%s: %w", section, id, fs.ErrNotExist)
	}

	for _, ext := range PartialExtensions {
		for _, m := range matches {
			if strings.HasSuffix(m, ext) {
				return m, nil
			}
		}
	}
	return matches[0], nil
}

// validSegment rejects empty, relative and nested path segments.
func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

// escapeMeta backslash-escapes the glob metacharacters in s so it matches
// itself literally.
func escapeMeta(s string) string {
	if !strings.ContainsAny(s, `\*?[]{}`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\*?[]{}`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
