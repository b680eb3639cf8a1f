package apitoc

import (
	"regexp"
	"slices"
	"strings"
)

// Kind is the role of a header-link anchor, derived from the element holding it.
type Kind int

const (
	KindIgnored Kind = iota
	KindPrimary
	KindSecondary
	KindPartOfClass
	KindSecond
)

// Kinds lists every kind that produces an entry, in a stable order.
var Kinds = []Kind{KindPrimary, KindSecondary, KindPartOfClass, KindSecond}

func (k Kind) String() string {
	switch k {
	case KindPrimary:
		return "primary"
	case KindSecondary:
		return "secondary"
	case KindPartOfClass:
		return "part_of_class"
	case KindSecond:
		return "second"
	default:
		return "ignored"
	}
}

// Class returns the style class carried by entries of this kind.
func (k Kind) Class() string {
	switch k {
	case KindSecondary:
		return "h2"
	case KindPartOfClass:
		return "partOfClass"
	case KindSecond:
		return "second"
	default:
		return ""
	}
}

// IsTerm reports whether entries of this kind take their label from definition-term markup.
func (k Kind) IsTerm() bool {
	return k == KindPartOfClass || k == KindSecond
}

// Context is everything classification needs to know about one anchor.
type Context struct {
	// ParentTag is the lower-case tag name of the anchor's parent element.
	ParentTag string
	// GrandparentClasses is the class list of the parent's parent, if any.
	GrandparentClasses []string
	// Text is the parent's first text node.
	Text string
	// InnerHTML is the parent's inner markup, the anchor included.
	InnerHTML string
	Href      string
}

// Classify maps an anchor context onto its entry kind.
func Classify(ctx Context, opts Options) Kind {
	opts = opts.withDefaults()
	switch strings.ToLower(ctx.ParentTag) {
	case "":
		return KindIgnored
	case opts.PrimaryTag:
		return KindPrimary
	case opts.SecondaryTag:
		return KindSecondary
	case opts.TermTag:
		for _, c := range ctx.GrandparentClasses {
			if slices.Contains(opts.MemberClasses, c) {
				return KindPartOfClass
			}
		}
		return KindSecond
	default:
		return KindIgnored
	}
}

// Label derives the entry label for an anchor of the given kind.
func Label(ctx Context, kind Kind) string {
	switch {
	case kind == KindPrimary || kind == KindSecondary:
		return ctx.Text
	case kind.IsTerm():
		return CleanLabel(ctx.InnerHTML)
	default:
		return ""
	}
}

var (
	// Greedy on purpose: with several anchors on one line everything between the first
	// opening tag and the last closing tag goes.
	selfLinkPattern = regexp.MustCompile(`<a .*</a>`)
	descOpenPattern = regexp.MustCompile(`<tt class="desc[^"]*"`)
)

// CleanLabel rewrites definition-term markup into sidebar label markup: embedded anchors are
// dropped and <tt class="desc..."> signature parts become <span class="apiln"> spans.
// This is plain string substitution; irregular markup yields imperfect labels, never errors.
func CleanLabel(inner string) string {
	label := selfLinkPattern.ReplaceAllString(inner, "")
	label = descOpenPattern.ReplaceAllString(label, `<span class="apiln"`)
	return strings.ReplaceAll(label, "</tt>", "</span>")
}
