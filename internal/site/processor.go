// Package site runs the TOC builder over every page of a generated documentation site.
package site

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/apitoc/internal/apitoc"
	"git.home.luguber.info/inful/apitoc/internal/foundation/errors"
	"git.home.luguber.info/inful/apitoc/internal/logfields"
	"git.home.luguber.info/inful/apitoc/internal/metrics"
	"git.home.luguber.info/inful/apitoc/internal/page"
	"git.home.luguber.info/inful/apitoc/internal/progress"
)

// DefaultInclude selects every HTML page of the site.
var DefaultInclude = []string{"**/*.html"}

// DefaultConcurrency bounds the number of pages processed at once.
const DefaultConcurrency = 4

// Config describes one site run.
type Config struct {
	Root        string
	Include     []string // doublestar patterns, relative to Root
	Exclude     []string
	Concurrency int
	FailFast    bool
	Page        page.Options
}

// Processor discovers and processes the pages of a site.
type Processor struct {
	cfg      Config
	recorder metrics.Recorder
	reporter progress.Reporter
}

// NewProcessor returns a processor with no metrics and no progress output.
func NewProcessor(cfg Config) *Processor {
	if len(cfg.Include) == 0 {
		cfg.Include = DefaultInclude
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &Processor{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		reporter: progress.NoopReporter{},
	}
}

// WithRecorder sets the metrics recorder.
func (p *Processor) WithRecorder(r metrics.Recorder) *Processor {
	if r != nil {
		p.recorder = r
	}
	return p
}

// WithReporter sets the progress reporter.
func (p *Processor) WithReporter(r progress.Reporter) *Processor {
	if r != nil {
		p.reporter = r
	}
	return p
}

// Root returns the site root.
func (p *Processor) Root() string { return p.cfg.Root }

// Resets reports whether pages drop previously generated entries before rebuilding.
func (p *Processor) Resets() bool { return p.cfg.Page.Reset }

// Matches reports whether a root-relative, slash-separated path is selected by the
// include and exclude patterns.
func (p *Processor) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	if !matchAny(p.cfg.Include, rel) {
		return false
	}
	return !matchAny(p.cfg.Exclude, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Discover returns the selected pages as sorted root-relative paths.
func (p *Processor) Discover() ([]string, error) {
	info, err := os.Stat(p.cfg.Root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNotFound, "site root not found").WithContext("site_root", p.cfg.Root).Build()
	}
	if !info.IsDir() {
		return nil, errors.ValidationError("site root is not a directory").WithContext("site_root", p.cfg.Root).Build()
	}

	var pages []string
	err = filepath.WalkDir(p.cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(p.cfg.Root, path)
		if err != nil {
			return err
		}
		if p.Matches(rel) {
			pages = append(pages, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk site").WithContext("site_root", p.cfg.Root).Build()
	}
	sort.Strings(pages)
	return pages, nil
}

// Run discovers and processes every selected page.
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	pages, err := p.Discover()
	if err != nil {
		return nil, err
	}
	slog.Info("Building API table of contents", logfields.SiteRoot(p.cfg.Root), logfields.Pages(len(pages)))
	return p.ProcessPaths(ctx, pages)
}

// ProcessPaths processes the given root-relative pages. Individual page failures are
// collected in the summary; with FailFast the first failure aborts the run and is returned.
func (p *Processor) ProcessPaths(ctx context.Context, pages []string) (*Summary, error) {
	start := time.Now()
	summary := newSummary()
	var mu sync.Mutex

	p.reporter.Start(len(pages))
	defer p.reporter.Finish()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)
	for _, rel := range pages {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := p.processOne(rel)
			p.reporter.Step(rel)

			mu.Lock()
			summary.add(res)
			mu.Unlock()

			if res.err != nil && p.cfg.FailFast {
				return res.err
			}
			return nil
		})
	}
	err := g.Wait()
	summary.Duration = time.Since(start)
	p.recorder.ObserveRunDuration(summary.Duration)

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		if ctx.Err() != nil && !errors.IsClassified(err) {
			err = errors.WrapError(err, errors.CategoryCanceled, "run canceled").Build()
		}
		return summary, err
	}
	slog.Info("API table of contents built",
		logfields.Pages(summary.Pages),
		logfields.Changed(summary.Changed),
		logfields.Entries(summary.Entries),
		logfields.DurationMS(float64(summary.Duration.Microseconds())/1000))
	return summary, nil
}

type pageResult struct {
	rel     string
	outcome page.Outcome
	err     error
}

func (p *Processor) processOne(rel string) pageResult {
	start := time.Now()
	path := filepath.Join(p.cfg.Root, filepath.FromSlash(rel))
	outcome, err := page.ProcessFile(path, p.cfg.Page)
	p.recorder.ObservePageDuration(time.Since(start))

	switch {
	case err != nil:
		p.recorder.IncPageResult(metrics.ResultFailed)
		slog.Warn("Failed to process page", logfields.Page(rel), logfields.Error(err))
	case outcome.Containers == 0:
		p.recorder.IncPageResult(metrics.ResultNoContainer)
		slog.Debug("Page has no TOC container", logfields.Page(rel), logfields.Entries(len(outcome.Entries)))
	case outcome.Changed:
		p.recorder.IncPageResult(metrics.ResultChanged)
		slog.Debug("Page updated", logfields.Page(rel), logfields.Entries(len(outcome.Entries)))
	default:
		p.recorder.IncPageResult(metrics.ResultUnchanged)
	}
	if err == nil && outcome.Containers > 0 {
		for _, kind := range apitoc.Kinds {
			p.recorder.AddEntries(kind.String(), outcome.Count(kind))
		}
	}
	return pageResult{rel: rel, outcome: outcome, err: err}
}
