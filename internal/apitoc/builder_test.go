package apitoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const container = `<div class="apitoc"></div>`

func parse(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + body + "</body></html>"))
	require.NoError(t, err)
	return doc
}

// tocMarkup renders the children of the first container.
func tocMarkup(t *testing.T, doc *html.Node) []string {
	t.Helper()
	cs := Containers(doc, Options{})
	require.NotEmpty(t, cs, "container missing")
	var out []string
	for c := cs[0].FirstChild; c != nil; c = c.NextSibling {
		var b strings.Builder
		require.NoError(t, html.Render(&b, c))
		out = append(out, b.String())
	}
	return out
}

func TestBuild_PrimaryHeading(t *testing.T) {
	doc := parse(t, container+`<h1>Intro<a class="headerlink" href="#intro" title="Permalink to this headline">¶</a></h1>`)

	res := Build(doc, Options{})

	require.Len(t, res.Entries, 1)
	assert.Equal(t, Entry{Href: "#intro", Label: "Intro", Kind: KindPrimary}, res.Entries[0])
	assert.Equal(t, 1, res.Containers)
	assert.Equal(t, []string{`<a href="#intro">Intro</a>`}, tocMarkup(t, doc))
}

func TestBuild_SecondaryHeading(t *testing.T) {
	doc := parse(t, container+`<h2>Details<a class="headerlink" href="#details">¶</a></h2>`)

	res := Build(doc, Options{})

	require.Len(t, res.Entries, 1)
	assert.Equal(t, KindSecondary, res.Entries[0].Kind)
	assert.Equal(t, []string{`<a class="h2" href="#details">Details</a>`}, tocMarkup(t, doc))
}

func TestBuild_MethodTerm(t *testing.T) {
	doc := parse(t, container+`<dl class="method"><dt id="foo"><tt class="descname">foo</tt>(x)<a class="headerlink" href="#foo" title="Permalink to this definition">¶</a></dt><dd>Does foo.</dd></dl>`)

	res := Build(doc, Options{})

	require.Len(t, res.Entries, 1)
	assert.Equal(t, KindPartOfClass, res.Entries[0].Kind)
	assert.Equal(t, `<span class="apiln">foo</span>(x)`, res.Entries[0].Label)
	assert.Equal(t, []string{`<a class="partOfClass" href="#foo"><span class="apiln">foo</span>(x)</a>`}, tocMarkup(t, doc))
}

func TestBuild_AttributeTerm(t *testing.T) {
	doc := parse(t, container+`<dl class="attribute"><dt id="bar"><tt class="descname">bar</tt><a class="headerlink" href="#bar">¶</a></dt></dl>`)

	res := Build(doc, Options{})

	require.Len(t, res.Entries, 1)
	assert.Equal(t, KindPartOfClass, res.Entries[0].Kind)
}

func TestBuild_PlainTerm(t *testing.T) {
	doc := parse(t, container+`<dl class="function"><dt id="foo"><tt class="descname">foo</tt>(x)<a class="headerlink" href="#foo">¶</a></dt></dl>`)

	res := Build(doc, Options{})

	require.Len(t, res.Entries, 1)
	assert.Equal(t, KindSecond, res.Entries[0].Kind)
	assert.Equal(t, []string{`<a class="second" href="#foo"><span class="apiln">foo</span>(x)</a>`}, tocMarkup(t, doc))
}

func TestBuild_UnrecognisedParentIsSkipped(t *testing.T) {
	doc := parse(t, container+`<p>Para<a class="headerlink" href="#p">¶</a></p>`)

	res := Build(doc, Options{})

	assert.Empty(t, res.Entries)
	assert.Empty(t, tocMarkup(t, doc))
}

func TestBuild_EmptyDocument(t *testing.T) {
	doc := parse(t, container)

	res := Build(doc, Options{})

	assert.Empty(t, res.Entries)
	assert.Equal(t, 1, res.Containers)
	assert.Empty(t, tocMarkup(t, doc))
}

func TestBuild_MissingContainerIsNoop(t *testing.T) {
	doc := parse(t, `<h1>Intro<a class="headerlink" href="#intro">¶</a></h1>`)

	res := Build(doc, Options{})

	assert.Len(t, res.Entries, 1)
	assert.Zero(t, res.Containers)
}

func TestBuild_EmptyHeadingStillProducesEntry(t *testing.T) {
	doc := parse(t, container+`<h1><a class="headerlink" href="#empty">¶</a></h1>`)

	res := Build(doc, Options{})

	require.Len(t, res.Entries, 1)
	assert.Empty(t, res.Entries[0].Label)
	assert.Equal(t, []string{`<a href="#empty"></a>`}, tocMarkup(t, doc))
}

func TestBuild_DocumentOrder(t *testing.T) {
	doc := parse(t, container+
		`<h1>Module<a class="headerlink" href="#module">¶</a></h1>`+
		`<dl class="class"><dt id="Feed"><tt class="descname">Feed</tt><a class="headerlink" href="#Feed">¶</a></dt>`+
		`<dd><dl class="method"><dt id="Feed.rss"><tt class="descname">rss</tt>()<a class="headerlink" href="#Feed.rss">¶</a></dt></dl></dd></dl>`+
		`<h2>Helpers<a class="headerlink" href="#helpers">¶</a></h2>`)

	res := Build(doc, Options{})

	var kinds []Kind
	var hrefs []string
	for _, e := range res.Entries {
		kinds = append(kinds, e.Kind)
		hrefs = append(hrefs, e.Href)
	}
	assert.Equal(t, []Kind{KindPrimary, KindSecond, KindPartOfClass, KindSecondary}, kinds)
	assert.Equal(t, []string{"#module", "#Feed", "#Feed.rss", "#helpers"}, hrefs)
	assert.Equal(t, 1, res.Count(KindPartOfClass))
	assert.Len(t, tocMarkup(t, doc), 4)
}

func TestBuild_TwiceDuplicatesEntries(t *testing.T) {
	doc := parse(t, container+`<h1>Intro<a class="headerlink" href="#intro">¶</a></h1>`)

	Build(doc, Options{})
	Build(doc, Options{})

	assert.Len(t, tocMarkup(t, doc), 2)
}

func TestReset_RemovesOnlyTaggedEntries(t *testing.T) {
	doc := parse(t, `<div class="apitoc"><h3>API</h3></div><h1>Intro<a class="headerlink" href="#intro">¶</a></h1>`)
	opts := Options{EntryAttr: DefaultEntryAttr}
	Build(doc, opts)

	removed := Reset(doc, opts)
	Build(doc, opts)

	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{`<h3>API</h3>`, `<a href="#intro" data-apitoc="">Intro</a>`}, tocMarkup(t, doc))
}

func TestReset_KeepsUntaggedChildren(t *testing.T) {
	doc := parse(t, `<div class="apitoc"><h3>API</h3><a href="#home">Home</a></div><h1>Intro<a class="headerlink" href="#intro">¶</a></h1>`)
	Build(doc, Options{})

	removed := Reset(doc, Options{})

	assert.Zero(t, removed)
	assert.Equal(t, []string{`<h3>API</h3>`, `<a href="#home">Home</a>`, `<a href="#intro">Intro</a>`}, tocMarkup(t, doc))
}

func TestBuild_EveryContainerReceivesEntries(t *testing.T) {
	doc := parse(t, container+container+`<h1>Intro<a class="headerlink" href="#intro">¶</a></h1>`)

	res := Build(doc, Options{})

	assert.Equal(t, 2, res.Containers)
	for _, c := range Containers(doc, Options{}) {
		require.NotNil(t, c.FirstChild)
		assert.Equal(t, "a", c.FirstChild.Data)
	}
}

func TestBuild_CustomConventions(t *testing.T) {
	doc := parse(t, `<nav class="sidebar"></nav><h3>Topic<span class="permalink" data-x="1"></span></h3>`)
	opts := Options{MarkerClass: "permalink", ContainerTag: "nav", ContainerClass: "sidebar", PrimaryTag: "H3"}

	res := Build(doc, opts)

	require.Len(t, res.Entries, 1)
	assert.Equal(t, KindPrimary, res.Entries[0].Kind)
	assert.Equal(t, "Topic", res.Entries[0].Label)
	assert.Equal(t, 1, res.Containers)
}

func TestNewContext_DetachedAnchor(t *testing.T) {
	_, ok := NewContext(&html.Node{Type: html.ElementNode, Data: "a"})
	assert.False(t, ok)
}

func TestEntryMarkup_EscapesHeadingText(t *testing.T) {
	e := Entry{Href: "#cmp", Label: "a < b", Kind: KindPrimary}
	assert.Equal(t, `<a href="#cmp">a &lt; b</a>`, e.Markup())
}
