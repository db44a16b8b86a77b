package site

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/iodocs/internal/route"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// sessionRequest is the incoming websocket message format.
type sessionRequest struct {
	Type     string `json:"type"` // "init", "navigate" or "loaded"
	Fragment string `json:"fragment,omitempty"`
	Location string `json:"location,omitempty"`
}

// highlightMessage asks the client to apply the highlight stylesheet.
type highlightMessage struct {
	Type       string `json:"type"`
	Stylesheet string `json:"stylesheet"`
}

// scrollMessage asks the client to scroll its viewport.
type scrollMessage struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// errorMessage reports a malformed request.
type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// session is one websocket connection with its own resolver. Fragment
// changes arrive serially from the read loop.
type session struct {
	id       string
	conn     *websocket.Conn
	writeMu  sync.Mutex
	resolver *route.Resolver
	location string
	log      *slog.Logger
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	sess := &session{
		id:   uuid.New().String(),
		conn: conn,
	}
	sess.log = s.log.With("session", sess.id)

	opts := s.opts
	opts.Highlighter = route.HighlighterFunc(func() {
		sess.send(highlightMessage{Type: "highlight", Stylesheet: "/static/highlight.css"})
	})
	opts.Viewport = route.ViewportFunc(func(x, y int) {
		sess.send(scrollMessage{Type: "scroll", X: x, Y: y})
	})
	sess.resolver = s.newResolver(opts)

	unsubscribe := sess.resolver.Subscribe(func(route.State) {
		resp := newRouteResponse(sess.resolver, sess.location)
		resp.Type = "route"
		resp.SessionID = sess.id
		sess.send(resp)
	})
	defer unsubscribe()

	sess.log.Debug("route session opened")
	sess.serve()
	sess.log.Debug("route session closed")
}

func (sess *session) serve() {
	for {
		_, msg, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.log.Warn("websocket read", "err", err)
			}
			return
		}

		var req sessionRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			sess.sendError("invalid message format")
			continue
		}

		switch req.Type {
		case "init":
			sess.location = req.Location
			sess.resolver.Initialize(req.Location)
		case "navigate":
			sess.location = navigateLocation(sess.location, req)
			sess.resolver.OnFragmentChanged(req.Fragment)
		case "loaded":
			sess.resolver.AfterContentLoaded()
		default:
			sess.sendError("unknown message type: " + req.Type)
		}
	}
}

// navigateLocation returns the reader's location after a navigate message:
// the reported location, or the previous one with its fragment replaced.
func navigateLocation(prev string, req sessionRequest) string {
	if req.Location != "" {
		return req.Location
	}
	base, _, _ := strings.Cut(prev, "#")
	return base + "#" + req.Fragment
}

func (sess *session) send(v any) {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if err := sess.conn.WriteJSON(v); err != nil {
		sess.log.Warn("websocket write", "err", err)
	}
}

func (sess *session) sendError(msg string) {
	sess.send(errorMessage{Type: "error", Error: msg})
}
