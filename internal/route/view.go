package route

// SectionLink is one entry of the top-level section navigation.
type SectionLink struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Active string `json:"active,omitempty"`
}

// View is a snapshot of everything a renderer needs for the current route.
type View struct {
	State       State         `json:"state"`
	PartialPath string        `json:"partial_path"`
	Nav         []NavItem     `json:"nav"`
	Sections    []SectionLink `json:"sections"`
	Feedback    string        `json:"feedback"`
}

// View captures the current route for a reader at location.
func (r *Resolver) View(location string) View {
	sections := r.index.Sections()
	links := make([]SectionLink, len(sections))
	for i, s := range sections {
		links[i] = SectionLink{
			ID:     s,
			URL:    "#" + Marker + "/" + s,
			Active: r.IsSectionActive(s),
		}
	}
	return View{
		State:       r.State(),
		PartialPath: r.CurrentPartialPath(),
		Nav:         r.Nav(),
		Sections:    links,
		Feedback:    r.FeedbackMailto(location),
	}
}
