// Package highlight renders documentation partials with syntax-highlighted
// code blocks.
package highlight

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"path"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// brushPattern matches the <pre class="brush: lang"> blocks that the
// documentation partials use to mark code.
var brushPattern = regexp.MustCompile(`(?is)<pre\s+class="brush:\s*([\w#+.-]+)[^"]*"\s*>(.*?)</pre>`)

// Renderer converts partial documents to HTML.
type Renderer struct {
	style  string
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSanitize strips scripts, event handlers and other unsafe markup from
// every rendered partial while keeping the highlighting classes.
func WithSanitize() Option {
	return func(r *Renderer) {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").Globally()
		r.policy = p
	}
}

// New creates a Renderer using the named chroma style.
func New(style string, opts ...Option) *Renderer {
	if style == "" {
		style = DefaultStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	r := &Renderer{style: style, md: md}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Style returns the chroma style name.
func (r *Renderer) Style() string { return r.style }

// Render converts src to HTML according to the extension of name: markdown
// goes through goldmark, HTML has its brush blocks highlighted, anything
// else is returned unchanged.
func (r *Renderer) Render(name string, src []byte) ([]byte, error) {
	var out []byte
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		var buf bytes.Buffer
		if err := r.md.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("converting markdown %s: %w", name, err)
		}
		out = buf.Bytes()
	case ".html", ".htm":
		out = HighlightBrushBlocks(src)
	default:
		out = src
	}
	if r.policy != nil {
		out = r.policy.SanitizeBytes(out)
	}
	return out, nil
}

// Sanitizing reports whether rendered output is sanitized.
func (r *Renderer) Sanitizing() bool { return r.policy != nil }

// HighlightBrushBlocks replaces every <pre class="brush: lang"> block in
// src with chroma markup. Blocks that fail to tokenise are left as-is.
func HighlightBrushBlocks(src []byte) []byte {
	return brushPattern.ReplaceAllFunc(src, func(block []byte) []byte {
		m := brushPattern.FindSubmatch(block)
		code := stdhtml.UnescapeString(string(m[2]))
		out, err := highlightCode(string(m[1]), code)
		if err != nil {
			return block
		}
		return out
	})
}

func highlightCode(language, code string) ([]byte, error) {
	lexer := chroma.Coalesce(pickLexer(language, code))
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.Format(&buf, styles.Fallback, iterator); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pickLexer(language, code string) chroma.Lexer {
	if language != "" {
		if lexer := lexers.Get(strings.ToLower(language)); lexer != nil {
			return lexer
		}
	}
	if lexer := lexers.Analyse(code); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}

// CSS returns the stylesheet for the class-based markup produced by
// Renderer, using the renderer's style.
func (r *Renderer) CSS() (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(r.style)); err != nil {
		return "", fmt.Errorf("writing %s stylesheet: %w", r.style, err)
	}
	return buf.String(), nil
}
