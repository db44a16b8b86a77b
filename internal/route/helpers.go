package route

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/ziadkadry99/iodocs/internal/pages"
)

// Active is returned by the active-state predicates for a match.
const Active = "current"

// URLFor returns the in-page link for p.
func URLFor(p pages.Page) string {
	return "#" + Marker + "/" + p.Section + "/" + p.ID
}

// CurrentPartialPath returns the relative path of the partial document to
// load, or "" when the current route matched no page.
func (r *Resolver) CurrentPartialPath() string {
	st := r.State()
	if st.PartialID == "" {
		return ""
	}
	return "./" + st.SectionID + "/" + st.PartialID + ".html"
}

// CSSClassFor returns the navigation class list for p.
//
// The selected marker compares the page name, not its id, with the current
// partial id.
func (r *Resolver) CSSClassFor(p pages.Page) string {
	class := "level-" + strconv.Itoa(p.Depth)
	if st := r.State(); st.Found() && p.Name == st.PartialID {
		class += " selected"
	}
	if p.Section == "api" {
		class += " monospace"
	}
	return class
}

// IsSectionActive returns Active when section is the current section. No
// section is active before a route names one.
func (r *Resolver) IsSectionActive(section string) string {
	if current := r.State().SectionID; current != "" && section == current {
		return Active
	}
	return ""
}

// IsPartialActive returns Active when p is the current page.
func (r *Resolver) IsPartialActive(p pages.Page) string {
	st := r.State()
	if !st.Found() || p.ID != st.PartialID {
		return ""
	}
	if r.opts.PartialActiveRequiresSectionMatch && p.Section != st.SectionID {
		return ""
	}
	return Active
}

// FeedbackMailto builds the feedback link for a reader at location.
func (r *Resolver) FeedbackMailto(location string) string {
	return "mailto:" + r.opts.FeedbackAddress + "?" +
		"subject=" + Escape("Feedback on "+location) + "&" +
		"body=" + Escape("Hi there,\n\nI read "+location+" and wanted to ask ....")
}

// AfterContentLoaded highlights newly inserted content and scrolls the
// viewport back to the top.
func (r *Resolver) AfterContentLoaded() {
	if r.opts.Highlighter != nil {
		r.opts.Highlighter.Highlight()
	}
	if r.opts.Viewport != nil {
		r.opts.Viewport.ScrollTo(0, 0)
	}
}

// NavItem is one navigation entry rendered for the current route.
type NavItem struct {
	Page   pages.Page `json:"page"`
	URL    string     `json:"url"`
	Class  string     `json:"class"`
	Active string     `json:"active,omitempty"`
}

// Nav returns the navigation entries for the pages visible in the current
// section.
func (r *Resolver) Nav() []NavItem {
	visible := r.State().Pages
	items := make([]NavItem, len(visible))
	for i, p := range visible {
		items[i] = NavItem{
			Page:   p,
			URL:    URLFor(p),
			Class:  r.CSSClassFor(p),
			Active: r.IsPartialActive(p),
		}
	}
	return items
}

const escapeHex = "0123456789ABCDEF"

// Escape percent-encodes s with the alphabet of the legacy JavaScript
// escape() function: ASCII letters, digits and @*_+-./ pass through, other
// code units below 256 become %XX and the rest become %uXXXX.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, u := range utf16.Encode([]rune(s)) {
		switch {
		case u < 0x80 && unescaped(byte(u)):
			b.WriteByte(byte(u))
		case u < 0x100:
			b.WriteByte('%')
			b.WriteByte(escapeHex[u>>4])
			b.WriteByte(escapeHex[u&0xF])
		default:
			b.WriteString("%u")
			b.WriteByte(escapeHex[u>>12])
			b.WriteByte(escapeHex[(u>>8)&0xF])
			b.WriteByte(escapeHex[(u>>4)&0xF])
			b.WriteByte(escapeHex[u&0xF])
		}
	}
	return b.String()
}

func unescaped(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("@*_+-./", c) >= 0
}
