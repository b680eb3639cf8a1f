package apitoc

import "strings"

// Default markup conventions of the documentation theme.
const (
	DefaultMarkerClass    = "headerlink"
	DefaultContainerTag   = "div"
	DefaultContainerClass = "apitoc"
	DefaultPrimaryTag     = "h1"
	DefaultSecondaryTag   = "h2"
	DefaultTermTag        = "dt"

	// DefaultEntryAttr tags generated entries so Reset can tell them from theme content.
	DefaultEntryAttr = "data-apitoc"
)

// DefaultMemberClasses mark definition blocks that belong to a class.
var DefaultMemberClasses = []string{"method", "attribute"}

// Options describes the markup conventions the builder relies on. Zero fields fall back to
// the defaults above.
type Options struct {
	MarkerClass    string
	ContainerTag   string
	ContainerClass string
	PrimaryTag     string
	SecondaryTag   string
	TermTag        string
	MemberClasses  []string
	// EntryAttr, when set, is added without a value to every appended entry. Reset removes
	// only container children carrying it.
	EntryAttr      string
}

// DefaultOptions returns the conventions of the stock documentation theme.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

func (o Options) withDefaults() Options {
	o.MarkerClass = orDefault(o.MarkerClass, DefaultMarkerClass)
	o.ContainerTag = strings.ToLower(orDefault(o.ContainerTag, DefaultContainerTag))
	o.ContainerClass = orDefault(o.ContainerClass, DefaultContainerClass)
	o.PrimaryTag = strings.ToLower(orDefault(o.PrimaryTag, DefaultPrimaryTag))
	o.SecondaryTag = strings.ToLower(orDefault(o.SecondaryTag, DefaultSecondaryTag))
	o.TermTag = strings.ToLower(orDefault(o.TermTag, DefaultTermTag))
	if len(o.MemberClasses) == 0 {
		o.MemberClasses = DefaultMemberClasses
	}
	return o
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
