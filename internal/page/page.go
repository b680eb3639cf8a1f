// Package page applies the TOC builder to one rendered HTML page.
package page

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/apitoc/internal/apitoc"
	"git.home.luguber.info/inful/apitoc/internal/foundation/errors"
)

// Options controls how a page is processed.
type Options struct {
	TOC apitoc.Options
	// Reset removes previously generated entries before building, so processing a page twice
	// yields the same output instead of duplicated entries. Entries are then tagged with
	// apitoc.DefaultEntryAttr unless TOC.EntryAttr names another attribute; other container
	// content is kept.
	Reset bool
	// DryRun processes pages in memory without writing them back.
	DryRun bool
}

// Outcome describes the processing of one page.
type Outcome struct {
	apitoc.Result
	Removed int
	Changed bool
}

// Process parses the page read from r, builds its TOC and writes the resulting document to w.
func Process(r io.Reader, w io.Writer, opts Options) (Outcome, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Outcome{}, errors.WrapError(err, errors.CategoryParse, "failed to parse HTML").Build()
	}
	out := build(doc, opts)
	if err := html.Render(w, doc); err != nil {
		return out, errors.WrapError(err, errors.CategoryRender, "failed to render HTML").Build()
	}
	return out, nil
}

// ProcessFile processes the page at path in place. The file is rewritten only when the
// rendered document differs from what is on disk.
func ProcessFile(path string, opts Options) (Outcome, error) {
	original, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return Outcome{}, errors.WrapError(err, errors.CategoryNotFound, "page not found").WithContext("page", path).Build()
		}
		return Outcome{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").WithContext("page", path).Build()
	}

	doc, err := html.Parse(bytes.NewReader(original))
	if err != nil {
		return Outcome{}, errors.WrapError(err, errors.CategoryParse, "failed to parse HTML").WithContext("page", path).Build()
	}
	out := build(doc, opts)

	// Pages without anything to add or clear keep their original bytes; re-serialising
	// them would only reformat the markup.
	if !out.modified() {
		return out, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(original) + 256)
	if err := html.Render(&buf, doc); err != nil {
		return out, errors.WrapError(err, errors.CategoryRender, "failed to render HTML").WithContext("page", path).Build()
	}
	if bytes.Equal(buf.Bytes(), original) {
		return out, nil
	}
	out.Changed = true
	if opts.DryRun {
		return out, nil
	}
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return out, errors.WrapError(err, errors.CategoryFileSystem, "failed to write page").WithContext("page", path).Build()
	}
	return out, nil
}

// Inspect returns the TOC entries the page at path would receive, without modifying it.
func Inspect(path string, opts apitoc.Options) ([]apitoc.Entry, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryNotFound, "page not found").WithContext("page", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open page").WithContext("page", path).Build()
	}
	defer func() {
		_ = f.Close() // read-only
	}()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryParse, "failed to parse HTML").WithContext("page", path).Build()
	}
	return apitoc.Collect(doc, opts), nil
}

func (o Outcome) modified() bool {
	return o.Removed > 0 || (o.Containers > 0 && len(o.Entries) > 0)
}

func build(doc *html.Node, opts Options) Outcome {
	var out Outcome
	if opts.Reset {
		if opts.TOC.EntryAttr == "" {
			opts.TOC.EntryAttr = apitoc.DefaultEntryAttr
		}
		out.Removed = apitoc.Reset(doc, opts.TOC)
	}
	out.Result = apitoc.Build(doc, opts.TOC)
	return out
}

// writeAtomic replaces path with data through a temp file in the same directory, keeping
// the original file mode.
func writeAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
