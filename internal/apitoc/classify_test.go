package apitoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		ctx  Context
		want Kind
	}{
		{"h1", Context{ParentTag: "h1"}, KindPrimary},
		{"upper case tag", Context{ParentTag: "H1"}, KindPrimary},
		{"h2", Context{ParentTag: "h2"}, KindSecondary},
		{"h3 ignored", Context{ParentTag: "h3"}, KindIgnored},
		{"method term", Context{ParentTag: "dt", GrandparentClasses: []string{"method"}}, KindPartOfClass},
		{"attribute term", Context{ParentTag: "dt", GrandparentClasses: []string{"py", "attribute"}}, KindPartOfClass},
		{"function term", Context{ParentTag: "dt", GrandparentClasses: []string{"function"}}, KindSecond},
		{"term without grandparent", Context{ParentTag: "dt"}, KindSecond},
		{"paragraph", Context{ParentTag: "p"}, KindIgnored},
		{"no parent", Context{}, KindIgnored},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.ctx, Options{}))
		})
	}
}

func TestClassify_CustomMemberClasses(t *testing.T) {
	ctx := Context{ParentTag: "dt", GrandparentClasses: []string{"property"}}
	assert.Equal(t, KindSecond, Classify(ctx, Options{}))
	assert.Equal(t, KindPartOfClass, Classify(ctx, Options{MemberClasses: []string{"property"}}))
}

func TestKindClass(t *testing.T) {
	assert.Equal(t, "", KindPrimary.Class())
	assert.Equal(t, "h2", KindSecondary.Class())
	assert.Equal(t, "partOfClass", KindPartOfClass.Class())
	assert.Equal(t, "second", KindSecond.Class())
	assert.Equal(t, "", KindIgnored.Class())
	assert.Equal(t, "part_of_class", KindPartOfClass.String())
}

func TestLabel(t *testing.T) {
	ctx := Context{
		Text:      "Intro",
		InnerHTML: `<tt class="descname">foo</tt>(x)<a class="headerlink" href="#foo">¶</a>`,
	}
	assert.Equal(t, "Intro", Label(ctx, KindPrimary))
	assert.Equal(t, "Intro", Label(ctx, KindSecondary))
	assert.Equal(t, `<span class="apiln">foo</span>(x)`, Label(ctx, KindPartOfClass))
	assert.Equal(t, `<span class="apiln">foo</span>(x)`, Label(ctx, KindSecond))
	assert.Equal(t, "", Label(ctx, KindIgnored))
}

func TestCleanLabel(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "descname",
			in:   `<tt class="descname">foo</tt>(x)`,
			want: `<span class="apiln">foo</span>(x)`,
		},
		{
			name: "class prefix and name",
			in:   `<tt class="descclassname">feedgen.feed.</tt><tt class="descname">FeedGenerator</tt>`,
			want: `<span class="apiln">feedgen.feed.</span><span class="apiln">FeedGenerator</span>`,
		},
		{
			name: "self link removed",
			in:   `<tt class="descname">foo</tt><a class="headerlink" href="#foo" title="Permalink">¶</a>`,
			want: `<span class="apiln">foo</span>`,
		},
		{
			name: "greedy across several links on one line",
			in:   `<a href="#a">a</a>keep?<a href="#b">b</a>tail`,
			want: `tail`,
		},
		{
			name: "greedy match stops at line end",
			in:   "<a href=\"#a\">a</a>\nkept",
			want: "\nkept",
		},
		{
			name: "other tt untouched except closing tag",
			in:   `<tt class="xref">x</tt>`,
			want: `<tt class="xref">x</span>`,
		},
		{name: "empty", in: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanLabel(tc.in))
		})
	}
}
