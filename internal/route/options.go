package route

// SectionFilter decides which sections show only their own pages in the
// navigation instead of the whole index.
type SectionFilter struct {
	all      bool
	sections map[string]bool
}

// FilterAll filters every section to its own pages.
func FilterAll() SectionFilter {
	return SectionFilter{all: true}
}

// FilterSections filters only the named sections.
func FilterSections(ids ...string) SectionFilter {
	f := SectionFilter{sections: make(map[string]bool, len(ids))}
	for _, id := range ids {
		f.sections[id] = true
	}
	return f
}

// Applies reports whether section is shown filtered.
func (f SectionFilter) Applies(section string) bool {
	return f.all || f.sections[section]
}

// All reports whether the filter covers every section.
func (f SectionFilter) All() bool { return f.all }

// Highlighter runs a syntax-highlighting pass over freshly loaded content.
type Highlighter interface {
	Highlight()
}

// Viewport scrolls the reader's view.
type Viewport interface {
	ScrollTo(x, y int)
}

// HighlighterFunc adapts a function to Highlighter.
type HighlighterFunc func()

func (f HighlighterFunc) Highlight() { f() }

// ViewportFunc adapts a function to Viewport.
type ViewportFunc func(x, y int)

func (f ViewportFunc) ScrollTo(x, y int) { f(x, y) }

// DefaultFeedbackAddress receives feedback mail when none is configured.
const DefaultFeedbackAddress = "angular@googlegroups.com"

// Options configures a Resolver.
type Options struct {
	// DefaultFragment is used when the location carries no '#'.
	DefaultFragment string
	// FilteredSections selects sections whose navigation lists only their own pages.
	FilteredSections SectionFilter
	// PartialActiveRequiresSectionMatch makes IsPartialActive compare sections too.
	PartialActiveRequiresSectionMatch bool
	// FeedbackAddress is the mailto recipient.
	FeedbackAddress string

	Highlighter Highlighter
	Viewport    Viewport
}

// SiteOptions returns the options of the user guide bundled with the
// project documentation (overview, file, core and performance chapters): it
// opens on the overview, lists only the current chapter for the file, core
// and performance sections and checks sections when marking the active page.
func SiteOptions() Options {
	return Options{
		DefaultFragment:                   "!/overview",
		FilteredSections:                  FilterSections("file", "core", "performance"),
		PartialActiveRequiresSectionMatch: true,
		FeedbackAddress:                   DefaultFeedbackAddress,
	}
}

// DocumentationOptions returns the options of the API reference pages served
// by the project web site: it opens on the API section and always lists only
// the current section.
func DocumentationOptions() Options {
	return Options{
		DefaultFragment:  "!/api",
		FilteredSections: FilterAll(),
		FeedbackAddress:  DefaultFeedbackAddress,
	}
}
