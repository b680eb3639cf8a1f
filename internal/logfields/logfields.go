package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPage       = "page"
	KeySiteRoot   = "site_root"
	KeyHref       = "href"
	KeyTag        = "tag"
	KeyKind       = "kind"
	KeyContainer  = "container"
	KeyEntries    = "entries"
	KeyPages      = "pages"
	KeyChanged    = "changed"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Page(p string) slog.Attr         { return slog.String(KeyPage, p) }
func SiteRoot(p string) slog.Attr     { return slog.String(KeySiteRoot, p) }
func Href(h string) slog.Attr         { return slog.String(KeyHref, h) }
func Tag(t string) slog.Attr          { return slog.String(KeyTag, t) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Container(c string) slog.Attr    { return slog.String(KeyContainer, c) }
func Entries(n int) slog.Attr         { return slog.Int(KeyEntries, n) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Changed(n int) slog.Attr         { return slog.Int(KeyChanged, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
