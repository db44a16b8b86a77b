package route

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ziadkadry99/iodocs/internal/pages"
)

func TestURLFor(t *testing.T) {
	assert.Equal(t, "#!/api/foo", URLFor(pages.Page{Section: "api", ID: "foo"}))
}

func TestCSSClassFor(t *testing.T) {
	r := New(siteIndex(), SiteOptions())
	r.OnFragmentChanged("!/core/streams")

	tests := []struct {
		page pages.Page
		want string
	}{
		{pages.Page{Section: "core", ID: "index", Name: "Core", Depth: 0}, "level-0"},
		{pages.Page{Section: "api", ID: "foo", Name: "Foo", Depth: 1}, "level-1 monospace"},
		// The selected marker matches on the page name.
		{pages.Page{Section: "core", ID: "streams", Name: "Streams", Depth: 2}, "level-2"},
		{pages.Page{Section: "core", ID: "other", Name: "streams", Depth: 3}, "level-3 selected"},
		{pages.Page{Section: "api", ID: "x", Name: "streams", Depth: 1}, "level-1 selected monospace"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.CSSClassFor(tt.page), "%+v", tt.page)
	}
}

func TestHelpersMatchNothingWithoutAPage(t *testing.T) {
	index := pages.NewIndex([]pages.Page{
		{Section: "core", ID: "index", Name: "Core"},
		{Section: "core", ID: "untitled", Name: "", Depth: 1},
		{Section: "core", ID: "", Name: "Blank id", Depth: 1},
	})

	fresh := New(index, SiteOptions())
	assert.Equal(t, "", fresh.IsSectionActive(""), "no section is active before routing")
	assert.Equal(t, "", fresh.IsPartialActive(pages.Page{Section: "core"}))
	assert.Equal(t, "level-1", fresh.CSSClassFor(pages.Page{Section: "core", ID: "untitled", Depth: 1}))

	r := New(index, SiteOptions())
	r.OnFragmentChanged("!/core/missing")
	assert.False(t, r.State().Found())
	assert.Equal(t, "level-1", r.CSSClassFor(pages.Page{Section: "core", ID: "untitled", Name: "", Depth: 1}))
	assert.Equal(t, "", r.IsPartialActive(pages.Page{Section: "core", ID: ""}))
	assert.Equal(t, Active, r.IsSectionActive("core"))

	for _, item := range r.Nav() {
		assert.Equal(t, "", item.Active, "%+v", item.Page)
		assert.NotContains(t, item.Class, "selected", "%+v", item.Page)
	}
}

func TestIsSectionActiveMarkerOnly(t *testing.T) {
	r := New(siteIndex(), SiteOptions())
	r.OnFragmentChanged("!")
	assert.Equal(t, "", r.State().SectionID)
	assert.Equal(t, "", r.IsSectionActive(""))
}

func TestIsSectionActive(t *testing.T) {
	r := New(siteIndex(), SiteOptions())
	r.OnFragmentChanged("!/core/streams")

	assert.Equal(t, Active, r.IsSectionActive("core"))
	assert.Equal(t, "", r.IsSectionActive("api"))
}

func TestIsPartialActive(t *testing.T) {
	elsewhere := pages.Page{Section: "file", ID: "index"}
	here := pages.Page{Section: "core", ID: "index"}

	site := New(siteIndex(), SiteOptions())
	site.OnFragmentChanged("!/core")
	assert.Equal(t, Active, site.IsPartialActive(here))
	assert.Equal(t, "", site.IsPartialActive(elsewhere))

	docs := New(siteIndex(), DocumentationOptions())
	docs.OnFragmentChanged("!/core")
	assert.Equal(t, Active, docs.IsPartialActive(here))
	assert.Equal(t, Active, docs.IsPartialActive(elsewhere))
	assert.Equal(t, "", docs.IsPartialActive(pages.Page{Section: "core", ID: "streams"}))
}

func TestIsPartialActiveAfterNotFound(t *testing.T) {
	r := New(siteIndex(), DocumentationOptions())
	r.OnFragmentChanged("!/core/missing")
	assert.Equal(t, "", r.IsPartialActive(pages.Page{Section: "core", ID: "index"}))
}

func TestFeedbackMailto(t *testing.T) {
	r := New(siteIndex(), SiteOptions())
	got := r.FeedbackMailto("http://x/#!/api")

	want := "mailto:angular@googlegroups.com?" +
		"subject=Feedback%20on%20http%3A//x/%23%21/api&" +
		"body=Hi%20there%2C%0A%0AI%20read%20http%3A//x/%23%21/api%20and%20wanted%20to%20ask%20...."
	assert.Equal(t, want, got)
}

func TestFeedbackMailtoCustomAddress(t *testing.T) {
	opts := SiteOptions()
	opts.FeedbackAddress = "docs@example.org"
	r := New(siteIndex(), opts)
	assert.Contains(t, r.FeedbackMailto("here"), "mailto:docs@example.org?subject=Feedback%20on%20here&")
}

func TestEscape(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"azAZ09@*_+-./":  "azAZ09@*_+-./",
		"a b":            "a%20b",
		"ü":              "%FC",
		"€":              "%u20AC",
		"😀":              "%uD83D%uDE00",
		"?&=#":           "%3F%26%3D%23",
	}
	for in, want := range tests {
		assert.Equal(t, want, Escape(in), "Escape(%q)", in)
	}
}

func TestAfterContentLoaded(t *testing.T) {
	var calls []string
	opts := SiteOptions()
	opts.Highlighter = HighlighterFunc(func() { calls = append(calls, "highlight") })
	opts.Viewport = ViewportFunc(func(x, y int) {
		assert.Zero(t, x)
		assert.Zero(t, y)
		calls = append(calls, "scroll")
	})

	New(siteIndex(), opts).AfterContentLoaded()
	assert.Equal(t, []string{"highlight", "scroll"}, calls)

	// Without collaborators it is a no-op.
	New(siteIndex(), SiteOptions()).AfterContentLoaded()
}

func TestNav(t *testing.T) {
	r := New(siteIndex(), SiteOptions())
	r.OnFragmentChanged("!/core/index")

	nav := r.Nav()
	assert.Len(t, nav, 3)
	assert.Equal(t, "#!/core/index", nav[0].URL)
	assert.Equal(t, Active, nav[0].Active)
	assert.Equal(t, "level-1", nav[1].Class)
	assert.Equal(t, "", nav[1].Active)
}

func TestSectionFilter(t *testing.T) {
	f := FilterSections("file", "core")
	assert.True(t, f.Applies("core"))
	assert.False(t, f.Applies("api"))
	assert.False(t, f.All())

	assert.True(t, FilterAll().Applies("anything"))
	assert.True(t, FilterAll().All())
	assert.False(t, SectionFilter{}.Applies("core"))
}

func TestView(t *testing.T) {
	r := New(siteIndex(), SiteOptions())
	r.OnFragmentChanged("!/file")

	v := r.View("http://docs.local/#!/file")
	assert.Equal(t, "File", v.State.PartialTitle)
	assert.Equal(t, "./file/index.html", v.PartialPath)
	assert.Len(t, v.Nav, 1)
	assert.Equal(t, []SectionLink{
		{ID: "overview", URL: "#!/overview"},
		{ID: "core", URL: "#!/core"},
		{ID: "api", URL: "#!/api"},
		{ID: "file", URL: "#!/file", Active: Active},
	}, v.Sections)
	assert.Contains(t, v.Feedback, "http%3A//docs.local/%23%21/file")
}
