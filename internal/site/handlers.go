package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/iodocs/internal/pages"
	"github.com/ziadkadry99/iodocs/internal/route"
)

// partialsPrefix is where partial documents are mounted.
const partialsPrefix = "/partials/"

// routeResponse is the JSON body of /api/route and of websocket route messages.
type routeResponse struct {
	Type      string `json:"type,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	route.View
	PartialURL string `json:"partial_url,omitempty"`
}

func newRouteResponse(res *route.Resolver, location string) routeResponse {
	view := res.View(location)
	return routeResponse{View: view, PartialURL: partialURL(view.PartialPath)}
}

// partialURL maps the resolver's relative partial path onto the partials mount.
func partialURL(partialPath string) string {
	if partialPath == "" {
		return ""
	}
	return partialsPrefix + strings.TrimPrefix(partialPath, "./")
}

// requestLocation rebuilds the reader's location from the request and an
// optional fragment. Without a fragment the location carries no '#', so the
// resolver falls back to its default.
func requestLocation(r *http.Request, fragment string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	loc := scheme + "://" + r.Host + r.URL.Path
	if fragment != "" {
		loc += "#" + fragment
	}
	return loc
}

// requestFragment reads the fragment from ?fragment= or from the crawler
// form ?_escaped_fragment_=, which drops the route marker.
func requestFragment(r *http.Request) string {
	q := r.URL.Query()
	if f := q.Get("fragment"); f != "" {
		return f
	}
	if f, ok := q["_escaped_fragment_"]; ok && len(f) > 0 {
		return route.Marker + f[0]
	}
	return ""
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		location = requestLocation(r, requestFragment(r))
	}

	res := s.newResolver(s.opts)
	res.Initialize(location)
	writeJSON(w, http.StatusOK, newRouteResponse(res, location))
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	list := s.index.All()
	if section := r.URL.Query().Get("section"); section != "" {
		list = s.index.Section(section)
	}
	if list == nil {
		list = []pages.Page{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handlePartial(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	id, ok := strings.CutSuffix(chi.URLParam(r, "file"), ".html")
	if !ok {
		http.NotFound(w, r)
		return
	}

	body, err := s.renderPartial(section, id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		s.log.Error("rendering partial", "section", section, "id", id, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

// renderPartial loads and highlights the partial for (section, id).
func (s *Server) renderPartial(section, id string) ([]byte, error) {
	if s.cfg.Partials == nil {
		return nil, fs.ErrNotExist
	}
	name, err := pages.FindPartial(s.cfg.Partials, section, id)
	if err != nil {
		return nil, err
	}
	src, err := fs.ReadFile(s.cfg.Partials, name)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(name, src)
}

func (s *Server) handleHighlightCSS(w http.ResponseWriter, r *http.Request) {
	css, err := s.renderer.CSS()
	if err != nil {
		s.log.Error("building highlight stylesheet", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(css))
}

// shellData holds the data passed to the shell template.
type shellData struct {
	Title   string
	View    route.View
	Content template.HTML
}

func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	location := requestLocation(r, requestFragment(r))
	res := s.newResolver(s.opts)
	res.Initialize(location)

	data := shellData{Title: s.cfg.Title, View: res.View(location)}
	if st := res.State(); st.Found() {
		body, err := s.renderPartial(st.SectionID, st.PartialID)
		switch {
		case err == nil:
			data.Content = template.HTML(body)
		case errors.Is(err, fs.ErrNotExist):
			// Indexed page without a partial on disk: the title alone is shown.
		default:
			s.log.Warn("rendering partial for shell", "fragment", st.Fragment, "err", err)
		}
	}

	var buf bytes.Buffer
	if err := shellTemplate.Execute(&buf, data); err != nil {
		s.log.Error("rendering shell", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
