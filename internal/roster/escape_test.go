package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var hostileStrings = []string{
	"",
	"plain",
	"a & b",
	"<script>alert(1)</script>",
	`"><img src=x onerror=alert(1)>`,
	`' onmouseover='alert(1)`,
	"&amp; already looks escaped",
	"Tom's <b>\"bold\"</b> & co",
	"ünïcødé ✓ <>",
}

func TestEscape_Entities(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&amp;&lt;&gt;&quot;&#39;", Escape(`&<>"'`))
	assert.Equal(t, "42", Escape(42))
	assert.Equal(t, "-3", Escape(-3))
	assert.Equal(t, "&amp;amp;", Escape("&amp;"))
}

func TestEscape_NoRawSignificantCharacters(t *testing.T) {
	t.Parallel()

	for _, s := range hostileStrings {
		out := Escape(s)
		stripped := out
		for _, entity := range []string{"&amp;", "&lt;", "&gt;", "&quot;", "&#39;"} {
			stripped = strings.ReplaceAll(stripped, entity, "")
		}
		assert.False(t, strings.ContainsAny(stripped, `&<>"'`), "input %q gave %q", s, out)
	}
}

func TestEscape_RoundTripsThroughParser(t *testing.T) {
	t.Parallel()

	for _, s := range hostileStrings {
		markup := `<span data-v="` + Escape(s) + `" title='` + Escape(s) + `'>` + Escape(s) + `</span>`
		nodes := parseFragment(t, markup, atom.Div)

		spans := findAll(nodes, byTag(atom.Span))
		if assert.Len(t, spans, 1, "input %q", s) {
			assert.Equal(t, s, attr(spans[0], "data-v"))
			assert.Equal(t, s, attr(spans[0], "title"))
			assert.Equal(t, s, text(spans[0]))
		}
		assert.Equal(t, s, html.UnescapeString(Escape(s)))
	}
}
