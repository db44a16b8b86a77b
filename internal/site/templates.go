package site

import "html/template"

var shellTemplate = template.Must(template.New("shell").Parse(shellHTML))

// shellHTML is the page hosting the navigation and the current partial.
// The script keeps it in sync with location.hash over /ws/route.
const shellHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.View.State.PartialTitle}} — {{.Title}}</title>
  <link rel="stylesheet" href="/static/highlight.css" id="highlight-css">
  <style>
    body { margin: 0; font-family: system-ui, sans-serif; display: flex; }
    nav.sidebar { width: 18rem; padding: 1rem; border-right: 1px solid #ddd; min-height: 100vh; }
    nav.sections a { margin-right: .75rem; }
    nav.sections a.current, nav.sidebar li.current > a { font-weight: bold; }
    nav.sidebar ul { list-style: none; padding: 0; }
    .level-1 { padding-left: 1rem; } .level-2 { padding-left: 2rem; } .level-3 { padding-left: 3rem; }
    .monospace { font-family: ui-monospace, monospace; }
    .selected { background: #eef; }
    main { flex: 1; padding: 1rem 2rem; }
  </style>
</head>
<body>
  <nav class="sidebar">
    <h2>{{.Title}}</h2>
    <nav class="sections" id="sections">
      {{range .View.Sections}}<a href="{{.URL}}" class="{{.Active}}">{{.ID}}</a>
      {{end}}
    </nav>
    <ul id="pages">
      {{range .View.Nav}}<li class="{{.Class}} {{.Active}}"><a href="{{.URL}}">{{.Page.Name}}</a></li>
      {{end}}
    </ul>
    <p><a id="feedback" href="{{.View.Feedback}}">Send feedback</a></p>
  </nav>
  <main>
    <h1 id="partial-title">{{.View.State.PartialTitle}}</h1>
    <div id="content">{{.Content}}</div>
  </main>
  <script>
  (function () {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/ws/route");
    var $ = function (id) { return document.getElementById(id); };
    function send(msg) { ws.send(JSON.stringify(msg)); }
    function esc(s) { var d = document.createElement("div"); d.textContent = s; return d.innerHTML; }

    function render(view) {
      document.title = view.state.partial_title;
      $("partial-title").textContent = view.state.partial_title;
      $("feedback").href = view.feedback;
      $("sections").innerHTML = view.sections.map(function (s) {
        return '<a href="' + s.url + '" class="' + (s.active || "") + '">' + esc(s.id) + "</a>";
      }).join(" ");
      $("pages").innerHTML = view.nav.map(function (n) {
        return '<li class="' + n.class + " " + (n.active || "") + '"><a href="' + n.url + '">' + esc(n.page.name) + "</a></li>";
      }).join("");
      if (!view.partial_url) { $("content").innerHTML = ""; return; }
      fetch(view.partial_url).then(function (r) { return r.ok ? r.text() : ""; }).then(function (html) {
        $("content").innerHTML = html;
        send({ type: "loaded" });
      });
    }

    ws.onopen = function () { send({ type: "init", location: location.href }); };
    ws.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      switch (msg.type) {
        case "route": render(msg); break;
        case "highlight":
          if (!$("highlight-css")) {
            var l = document.createElement("link");
            l.rel = "stylesheet"; l.id = "highlight-css"; l.href = msg.stylesheet;
            document.head.appendChild(l);
          }
          break;
        case "scroll": window.scrollTo(msg.x, msg.y); break;
        case "error": console.warn("iodocs:", msg.error); break;
      }
    };
    window.addEventListener("hashchange", function () {
      send({ type: "navigate", fragment: location.hash.replace(/^#/, ""), location: location.href });
    });
  })();
  </script>
</body>
</html>
`
