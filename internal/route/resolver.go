// Package route resolves location fragments of the form "!/<section>/<id>"
// against the documentation page index.
package route

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ziadkadry99/iodocs/internal/pages"
)

const (
	// Marker starts every fragment the resolver treats as a route.
	Marker = "!"
	// DefaultPartial is the page id used when a fragment names only a section.
	DefaultPartial = "index"
	// NotFoundTitle is shown when no page matches the fragment.
	NotFoundTitle = "Error: Page Not Found!"
)

// State is the outcome of the last resolved fragment.
type State struct {
	Fragment  string `json:"fragment"`
	SectionID string `json:"section_id"`
	// PartialID is empty when no page matched.
	PartialID    string       `json:"partial_id,omitempty"`
	PartialTitle string       `json:"partial_title"`
	Pages        []pages.Page `json:"pages"`
}

// Found reports whether the last resolution matched a page.
func (s State) Found() bool { return s.PartialID != "" }

// Resolver tracks the route state of one reader.
//
// OnFragmentChanged is expected to be called by a single host; the state it
// publishes may be read concurrently.
type Resolver struct {
	index *pages.Index
	opts  Options
	state atomic.Pointer[State]

	mu        sync.Mutex
	nextSub   int
	listeners []listener
}

type listener struct {
	id int
	fn func(State)
}

// New creates a Resolver over index.
func New(index *pages.Index, opts Options) *Resolver {
	if opts.FeedbackAddress == "" {
		opts.FeedbackAddress = DefaultFeedbackAddress
	}
	r := &Resolver{index: index, opts: opts}
	r.state.Store(&State{})
	return r
}

// Options returns the resolver's configuration.
func (r *Resolver) Options() Options { return r.opts }

// Index returns the page index the resolver reads.
func (r *Resolver) Index() *pages.Index { return r.index }

// State returns the current route state.
func (r *Resolver) State() State { return *r.state.Load() }

// Initialize resolves the fragment of location, substituting the default
// fragment when location has no '#'. It returns the fragment used.
func (r *Resolver) Initialize(location string) string {
	fragment := r.opts.DefaultFragment
	if _, after, ok := strings.Cut(location, "#"); ok {
		fragment = after
	}
	r.OnFragmentChanged(fragment)
	return fragment
}

// OnFragmentChanged re-resolves the route state from fragment. Fragments
// without the route marker are ignored.
func (r *Resolver) OnFragmentChanged(fragment string) {
	if !strings.HasPrefix(fragment, Marker) {
		return
	}

	next := r.resolve(fragment)
	r.state.Store(&next)
	r.notify(next)
}

func (r *Resolver) resolve(fragment string) State {
	parts := strings.Split(strings.TrimPrefix(fragment, Marker), "/")

	st := State{Fragment: fragment, PartialID: DefaultPartial}
	if len(parts) > 1 {
		st.SectionID = parts[1]
	}
	if len(parts) > 2 && parts[2] != "" {
		st.PartialID = parts[2]
	}

	if r.opts.FilteredSections.Applies(st.SectionID) {
		st.Pages = r.index.Section(st.SectionID)
	} else {
		st.Pages = r.index.All()
	}

	// Later entries shadow earlier ones with the same id.
	i := len(st.Pages) - 1
	for ; i >= 0; i-- {
		p := st.Pages[i]
		if p.ID == st.PartialID && p.Section == st.SectionID {
			st.PartialTitle = p.Name
			break
		}
	}
	if i < 0 {
		st.PartialTitle = NotFoundTitle
		st.PartialID = ""
	}
	return st
}

// Subscribe registers fn to receive every newly resolved state. The
// returned function removes the registration.
func (r *Resolver) Subscribe(fn func(State)) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSub++
	id := r.nextSub
	r.listeners = append(r.listeners, listener{id: id, fn: fn})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

func (r *Resolver) notify(st State) {
	r.mu.Lock()
	ls := make([]listener, len(r.listeners))
	copy(ls, r.listeners)
	r.mu.Unlock()

	for _, l := range ls {
		l.fn(st)
	}
}
