package apitoc

import (
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/apitoc/internal/logfields"
)

// Entry is one link of the generated table of contents.
type Entry struct {
	Href  string
	Label string
	Kind  Kind
}

// Markup renders the entry the way it is appended to the container.
func (e Entry) Markup() string {
	var b strings.Builder
	_ = html.Render(&b, e.node())
	return b.String()
}

// node builds a detached <a> element for the entry. Heading labels are text; term labels
// are markup and get parsed as a fragment.
func (e Entry) node() *html.Node {
	a := &html.Node{Type: html.ElementNode, Data: "a", DataAtom: atom.A}
	if cls := e.Kind.Class(); cls != "" {
		a.Attr = append(a.Attr, html.Attribute{Key: "class", Val: cls})
	}
	a.Attr = append(a.Attr, html.Attribute{Key: "href", Val: e.Href})

	if e.Label == "" {
		return a
	}
	if e.Kind.IsTerm() {
		if nodes, err := html.ParseFragment(strings.NewReader(e.Label), a); err == nil {
			for _, n := range nodes {
				a.AppendChild(n)
			}
			return a
		}
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: e.Label})
	return a
}

// Result describes one Build pass.
type Result struct {
	Entries    []Entry
	Containers int
}

// Count returns the number of entries of the given kind.
func (r Result) Count(kind Kind) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Build is the one-shot page pass: collect every header-link anchor and append the
// resulting entries to the container. Calling it twice on the same tree duplicates entries;
// use Reset first when rebuilding.
func Build(doc *html.Node, opts Options) Result {
	opts = opts.withDefaults()
	entries := Collect(doc, opts)
	containers := Append(doc, entries, opts)
	return Result{Entries: entries, Containers: containers}
}

// Collect returns the entries for all marker anchors under doc, in document order.
func Collect(doc *html.Node, opts Options) []Entry {
	opts = opts.withDefaults()
	var entries []Entry
	walk(doc, func(n *html.Node) {
		if !hasClass(n, opts.MarkerClass) {
			return
		}
		ctx, ok := NewContext(n)
		if !ok {
			return
		}
		kind := Classify(ctx, opts)
		if kind == KindIgnored {
			slog.Debug("Skipping header link", logfields.Tag(ctx.ParentTag), logfields.Href(ctx.Href))
			return
		}
		entries = append(entries, Entry{Href: ctx.Href, Label: Label(ctx, kind), Kind: kind})
	})
	return entries
}

// NewContext reads the classification context of an anchor from its position in the tree.
// It reports false for anchors without a parent element.
func NewContext(anchor *html.Node) (Context, bool) {
	if anchor == nil || anchor.Parent == nil || anchor.Parent.Type != html.ElementNode {
		return Context{}, false
	}
	parent := anchor.Parent
	ctx := Context{
		ParentTag: strings.ToLower(parent.Data),
		Text:      firstText(parent),
		InnerHTML: innerHTML(parent),
		Href:      attr(anchor, "href"),
	}
	if gp := parent.Parent; gp != nil && gp.Type == html.ElementNode {
		ctx.GrandparentClasses = classes(gp)
	}
	return ctx, true
}

// Append adds the entries to every container element and returns how many containers
// received them. A page without a container is left untouched.
func Append(doc *html.Node, entries []Entry, opts Options) int {
	opts = opts.withDefaults()
	containers := Containers(doc, opts)
	if len(containers) == 0 {
		slog.Debug("No TOC container found",
			logfields.Container(opts.ContainerTag+"."+opts.ContainerClass),
			logfields.Entries(len(entries)))
		return 0
	}
	for _, c := range containers {
		for _, e := range entries {
			n := e.node()
			if opts.EntryAttr != "" {
				n.Attr = append(n.Attr, html.Attribute{Key: opts.EntryAttr})
			}
			c.AppendChild(n)
		}
	}
	return len(containers)
}

// Reset removes the entries a previous Append tagged with the entry attribute
// (DefaultEntryAttr when unset) and returns how many were removed. Anything else in the
// containers is theme content and stays.
func Reset(doc *html.Node, opts Options) int {
	key := opts.EntryAttr
	if key == "" {
		key = DefaultEntryAttr
	}
	removed := 0
	for _, c := range Containers(doc, opts) {
		for n := c.FirstChild; n != nil; {
			next := n.NextSibling
			if n.Type == html.ElementNode && hasAttr(n, key) {
				c.RemoveChild(n)
				removed++
			}
			n = next
		}
	}
	return removed
}

// Containers returns the container elements of doc in document order.
func Containers(doc *html.Node, opts Options) []*html.Node {
	opts = opts.withDefaults()
	var out []*html.Node
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == opts.ContainerTag && hasClass(n, opts.ContainerClass) {
			out = append(out, n)
		}
	})
	return out
}

// walk visits n and its descendants in document order. The next sibling is read before the
// callback runs so callers may append to the visited node.
func walk(n *html.Node, fn func(*html.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		walk(c, fn)
		c = next
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	return slices.ContainsFunc(n.Attr, func(a html.Attribute) bool { return a.Key == key })
}

func classes(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return slices.Contains(classes(n), class)
}

func firstText(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c.Data
		}
	}
	return ""
}

func innerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}
