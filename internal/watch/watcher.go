// Package watch rebuilds the TOC of pages as they change on disk.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/apitoc/internal/foundation/errors"
	"git.home.luguber.info/inful/apitoc/internal/logfields"
	"git.home.luguber.info/inful/apitoc/internal/site"
)

// DefaultDebounce is how long the watcher waits for writes to settle before processing.
const DefaultDebounce = 500 * time.Millisecond

// Watcher feeds changed pages under the processor's root back into the processor.
// The processor must reset containers: pages are then only rewritten when their content
// changes, so the watcher's own writes settle after one extra pass. Without reset every
// write would queue the page again and append the entries once more.
type Watcher struct {
	processor *site.Processor
	debounce  time.Duration
	watcher   *fsnotify.Watcher
	onBatch   func(*site.Summary)
}

// New creates a watcher over the processor's site root. It refuses processors that do not
// reset containers.
func New(processor *site.Processor, debounce time.Duration) (*Watcher, error) {
	if !processor.Resets() {
		return nil, errors.ValidationError("watch mode requires container reset").
			WithContext("site_root", processor.Root()).
			Build()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{processor: processor, debounce: debounce, watcher: fw}, nil
}

// OnBatch registers a callback invoked after every processed batch.
func (w *Watcher) OnBatch(fn func(*site.Summary)) {
	w.onBatch = fn
}

// Run watches until ctx is done. It closes the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Warn("Error closing file watcher", logfields.Error(err))
		}
	}()

	root := w.processor.Root()
	if err := w.addTree(root); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch site").WithContext("site_root", root).Build()
	}
	slog.Info("Watching site for changes", logfields.SiteRoot(root), logfields.DurationMS(float64(w.debounce.Milliseconds())))

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handle(root, event, pending) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))

		case <-timer.C:
			w.flush(ctx, pending)
			pending = make(map[string]struct{})
		}
	}
}

// handle queues the pages an event refers to and starts watching new directories. Pages
// already inside a new directory are queued as well.
func (w *Watcher) handle(root string, event fsnotify.Event, pending map[string]struct{}) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	queued := false
	queue := func(path string) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return
		}
		rel = filepath.ToSlash(rel)
		if w.processor.Matches(rel) {
			pending[rel] = struct{}{}
			queued = true
		}
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			err := filepath.WalkDir(event.Name, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					return w.watcher.Add(path)
				}
				queue(path)
				return nil
			})
			if err != nil {
				slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
			}
			return queued
		}
	}
	queue(event.Name)
	return queued
}

func (w *Watcher) flush(ctx context.Context, pending map[string]struct{}) {
	if len(pending) == 0 {
		return
	}
	pages := make([]string, 0, len(pending))
	for rel := range pending {
		if _, err := os.Stat(filepath.Join(w.processor.Root(), filepath.FromSlash(rel))); err == nil {
			pages = append(pages, rel)
		}
	}
	sort.Strings(pages)

	summary, err := w.processor.ProcessPaths(ctx, pages)
	if err != nil {
		slog.Error("Failed to rebuild changed pages", logfields.Pages(len(pages)), logfields.Error(err))
		return
	}
	if w.onBatch != nil {
		w.onBatch(summary)
	}
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}
