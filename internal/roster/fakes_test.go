package roster

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type fakeContainer struct {
	mu     sync.Mutex
	markup string
	writes int
}

func (f *fakeContainer) ReplaceHTML(markup string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markup = markup
	f.writes++
}

func (f *fakeContainer) HTML() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.markup
}

type fakeForm struct {
	mu     sync.Mutex
	fields map[string]string
	resets int
}

func newFakeForm(activity, email string) *fakeForm {
	return &fakeForm{fields: map[string]string{FieldActivity: activity, FieldEmail: email}}
}

func (f *fakeForm) Field(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[name]
}

func (f *fakeForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = map[string]string{}
	f.resets++
}

type fakeControl struct {
	mu       sync.Mutex
	attrs    map[string]string
	disabled bool
	history  []bool
}

func newFakeControl(activity, email string) *fakeControl {
	return &fakeControl{attrs: map[string]string{AttrActivity: activity, AttrEmail: email}}
}

func (f *fakeControl) Attr(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attrs[name]
}

func (f *fakeControl) SetDisabled(disabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled = disabled
	f.history = append(f.history, disabled)
}

func (f *fakeControl) Disabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disabled
}

type fakeBox struct {
	mu       sync.Mutex
	text     string
	kind     Kind
	hidden   bool
	displays int
	hides    int
}

func (f *fakeBox) Display(text string, kind Kind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text, f.kind, f.hidden = text, kind, false
	f.displays++
}

func (f *fakeBox) Hide() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hidden = true
	f.hides++
}

func (f *fakeBox) snapshot() (text string, kind Kind, hidden bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text, f.kind, f.hidden
}

// manualScheduler records scheduled hides so tests fire them explicitly.
type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (m *manualScheduler) schedule(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, f)
	m.delays = append(m.delays, d)
}

func (m *manualScheduler) fire(t *testing.T, i int) {
	t.Helper()
	m.mu.Lock()
	require.Less(t, i, len(m.pending))
	f := m.pending[i]
	m.mu.Unlock()
	f()
}

func (m *manualScheduler) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ─── markup inspection ───────────────────────────────────────────────────────

func parseFragment(t *testing.T, markup string, context atom.Atom) []*html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     context.String(),
		DataAtom: context,
	})
	require.NoError(t, err)
	return nodes
}

func walk(nodes []*html.Node, visit func(*html.Node)) {
	for _, n := range nodes {
		visit(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk([]*html.Node{c}, visit)
		}
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findAll(nodes []*html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walk(nodes, func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
	})
	return out
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func byTag(tag atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.DataAtom == tag }
}

func text(n *html.Node) string {
	var b strings.Builder
	walk([]*html.Node{n}, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

// cards returns the activity cards of roster markup.
func cards(t *testing.T, markup string) []*html.Node {
	t.Helper()
	return findAll(parseFragment(t, markup, atom.Div), byClass("activity-card"))
}
