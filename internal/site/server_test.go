package site

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/iodocs/internal/highlight"
	"github.com/ziadkadry99/iodocs/internal/pages"
	"github.com/ziadkadry99/iodocs/internal/route"
)

func testIndex() *pages.Index {
	return pages.NewIndex([]pages.Page{
		{Section: "overview", ID: "index", Name: "Overview", Depth: 0},
		{Section: "core", ID: "index", Name: "Core", Depth: 0},
		{Section: "core", ID: "streams", Name: "Streams", Depth: 1},
		{Section: "api", ID: "foo", Name: "Foo", Depth: 1},
	})
}

func testPartials() fstest.MapFS {
	return fstest.MapFS{
		"overview/index.html": {Data: []byte(`<p>Welcome</p>`)},
		"core/index.md":       {Data: []byte("# Core\n\n```java\nint x = 1;\n```\n")},
		"api/foo.html":        {Data: []byte(`<pre class="brush: scala">val x = 1</pre>`)},
	}
}

func newTestServer(t *testing.T, opts route.Options) *httptest.Server {
	t.Helper()
	srv := New(Config{
		Title:    "Scala IO",
		Partials: testPartials(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, testIndex(), opts, highlight.New("github"))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func getBody(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func getRoute(t *testing.T, url string) routeResponse {
	t.Helper()
	code, body := getBody(t, url)
	require.Equal(t, http.StatusOK, code, body)
	var got routeResponse
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	return got
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, route.SiteOptions())
	code, body := getBody(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestAPIRouteFound(t *testing.T) {
	ts := newTestServer(t, route.DocumentationOptions())

	got := getRoute(t, ts.URL+"/api/route?fragment=!/api/foo")
	assert.Equal(t, "api", got.State.SectionID)
	assert.Equal(t, "foo", got.State.PartialID)
	assert.Equal(t, "Foo", got.State.PartialTitle)
	assert.Equal(t, "./api/foo.html", got.PartialPath)
	assert.Equal(t, "/partials/api/foo.html", got.PartialURL)
	require.Len(t, got.Nav, 1)
	assert.Equal(t, "level-1 monospace", got.Nav[0].Class)
	assert.Equal(t, route.Active, got.Nav[0].Active)
	assert.True(t, strings.HasPrefix(got.Feedback, "mailto:"+route.DefaultFeedbackAddress+"?subject=Feedback%20on%20http%3A//"))
}

func TestAPIRouteNotFound(t *testing.T) {
	ts := newTestServer(t, route.DocumentationOptions())

	got := getRoute(t, ts.URL+"/api/route?fragment=!/api/missing")
	assert.Empty(t, got.State.PartialID)
	assert.Equal(t, route.NotFoundTitle, got.State.PartialTitle)
	assert.Empty(t, got.PartialPath)
	assert.Empty(t, got.PartialURL)
}

func TestAPIRouteDefaults(t *testing.T) {
	ts := newTestServer(t, route.SiteOptions())

	got := getRoute(t, ts.URL+"/api/route")
	assert.Equal(t, "!/overview", got.State.Fragment)
	assert.Equal(t, "Overview", got.State.PartialTitle)

	// Crawler form drops the marker.
	got = getRoute(t, ts.URL+"/api/route?_escaped_fragment_=/core/streams")
	assert.Equal(t, "Streams", got.State.PartialTitle)

	got = getRoute(t, ts.URL+"/api/route?location="+"http://docs.local/%23!/core")
	assert.Equal(t, "Core", got.State.PartialTitle)
	assert.Contains(t, got.Feedback, "http%3A//docs.local/%23%21/core")
}

func TestAPIRouteMatchesResolver(t *testing.T) {
	ts := newTestServer(t, route.SiteOptions())
	res := route.New(testIndex(), route.SiteOptions())

	for _, f := range []string{"!/core/streams", "!/core", "!/api/foo", "!/file/index"} {
		res.OnFragmentChanged(f)
		got := getRoute(t, ts.URL+"/api/route?fragment="+f)
		assert.Equal(t, res.State(), got.State, f)
	}
}

func TestAPIPages(t *testing.T) {
	ts := newTestServer(t, route.SiteOptions())

	code, body := getBody(t, ts.URL+"/api/pages?section=core")
	require.Equal(t, http.StatusOK, code)
	var list []pages.Page
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Len(t, list, 2)

	_, body = getBody(t, ts.URL+"/api/pages?section=nothing")
	assert.JSONEq(t, `[]`, body)

	_, body = getBody(t, ts.URL+"/api/pages")
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Len(t, list, 4)
}

func TestPartials(t *testing.T) {
	ts := newTestServer(t, route.SiteOptions())

	code, body := getBody(t, ts.URL+"/partials/api/foo.html")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `class="chroma"`)
	assert.NotContains(t, body, "brush:")

	code, body = getBody(t, ts.URL+"/partials/core/index.html")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `<h1 id="core">Core</h1>`)

	code, _ = getBody(t, ts.URL+"/partials/core/streams.html")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = getBody(t, ts.URL+"/partials/core/index.md")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHighlightCSS(t *testing.T) {
	ts := newTestServer(t, route.SiteOptions())
	resp, err := http.Get(ts.URL + "/static/highlight.css")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/css; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestShell(t *testing.T) {
	ts := newTestServer(t, route.SiteOptions())

	code, body := getBody(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<title>Overview — Scala IO</title>")
	assert.Contains(t, body, "<p>Welcome</p>")
	assert.Contains(t, body, `href="#!/core"`)
	assert.Contains(t, body, "mailto:")

	_, body = getBody(t, ts.URL+"/?fragment=!/core/streams")
	assert.Contains(t, body, `<h1 id="partial-title">Streams</h1>`)
	assert.Contains(t, body, `class="level-1 current"`)

	_, body = getBody(t, ts.URL+"/?fragment=!/core/missing")
	assert.Contains(t, body, route.NotFoundTitle)
}

func dialSession(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/route"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	var msg map[string]any
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestSessionInitAndNavigate(t *testing.T) {
	ts := newTestServer(t, route.SiteOptions())
	conn := dialSession(t, ts)

	require.NoError(t, conn.WriteJSON(sessionRequest{Type: "init", Location: "http://docs.local/"}))
	msg := readMessage(t, conn)
	assert.Equal(t, "route", msg["type"])
	assert.NotEmpty(t, msg["session_id"])
	state := msg["state"].(map[string]any)
	assert.Equal(t, "Overview", state["partial_title"])

	require.NoError(t, conn.WriteJSON(sessionRequest{Type: "navigate", Fragment: "!/core/streams", Location: "http://docs.local/#!/core/streams"}))
	msg = readMessage(t, conn)
	state = msg["state"].(map[string]any)
	assert.Equal(t, "Streams", state["partial_title"])
	assert.Equal(t, "/partials/core/streams.html", msg["partial_url"])
	assert.Contains(t, msg["feedback"], "%23%21/core/streams")
}

func TestSessionIgnoresNonRouteFragments(t *testing.T) {
	ts := newTestServer(t, route.SiteOptions())
	conn := dialSession(t, ts)

	// An anchor link produces no route message; the next reply is the error
	// for the unknown message type.
	require.NoError(t, conn.WriteJSON(sessionRequest{Type: "navigate", Fragment: "section-2"}))
	require.NoError(t, conn.WriteJSON(sessionRequest{Type: "bogus"}))

	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg["type"])
	assert.Equal(t, "unknown message type: bogus", msg["error"])
}

func TestSessionLoadedHighlightsAndScrolls(t *testing.T) {
	ts := newTestServer(t, route.SiteOptions())
	conn := dialSession(t, ts)

	require.NoError(t, conn.WriteJSON(sessionRequest{Type: "loaded"}))

	msg := readMessage(t, conn)
	assert.Equal(t, "highlight", msg["type"])
	assert.Equal(t, "/static/highlight.css", msg["stylesheet"])

	msg = readMessage(t, conn)
	assert.Equal(t, "scroll", msg["type"])
	assert.Equal(t, float64(0), msg["x"])
	assert.Equal(t, float64(0), msg["y"])
}

func TestSessionInvalidJSON(t *testing.T) {
	ts := newTestServer(t, route.SiteOptions())
	conn := dialSession(t, ts)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg["type"])
	assert.Equal(t, "invalid message format", msg["error"])
}

func TestPartialURL(t *testing.T) {
	assert.Equal(t, "", partialURL(""))
	assert.Equal(t, "/partials/core/index.html", partialURL("./core/index.html"))
}

func TestSessionNavigateWithoutLocationUpdatesFeedback(t *testing.T) {
	ts := newTestServer(t, route.SiteOptions())
	conn := dialSession(t, ts)

	require.NoError(t, conn.WriteJSON(sessionRequest{Type: "init", Location: "http://docs.local/#!/overview"}))
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(sessionRequest{Type: "navigate", Fragment: "!/core/streams"}))
	msg := readMessage(t, conn)
	feedback, _ := msg["feedback"].(string)
	assert.Contains(t, feedback, "http%3A//docs.local/%23%21/core/streams")
	assert.NotContains(t, feedback, "overview")
}

func TestNavigateLocation(t *testing.T) {
	tests := []struct {
		prev string
		req  sessionRequest
		want string
	}{
		{"http://docs.local/#!/overview", sessionRequest{Fragment: "!/core", Location: "http://other/#!/core"}, "http://other/#!/core"},
		{"http://docs.local/#!/overview", sessionRequest{Fragment: "!/core"}, "http://docs.local/#!/core"},
		{"http://docs.local/", sessionRequest{Fragment: "!/api"}, "http://docs.local/#!/api"},
		{"", sessionRequest{Fragment: "!/api"}, "#!/api"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, navigateLocation(tt.prev, tt.req), "prev %q", tt.prev)
	}
}
