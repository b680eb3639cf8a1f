package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while pages are processed. Implementations must be
// safe for concurrent use.
type Reporter interface {
	Start(total int)
	Step(page string)
	Finish()
}

// NewReporter returns a TerminalReporter for interactive terminals and a CIReporter when
// the CI environment variable is set.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: w}
	}
	return &TerminalReporter{w: w}
}

// NoopReporter reports nothing.
type NoopReporter struct{}

func (NoopReporter) Start(int)   {}
func (NoopReporter) Step(string) {}
func (NoopReporter) Finish()     {}

// TerminalReporter displays a progress bar.
type TerminalReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("Building TOC"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Step(page string) {
	if r.bar != nil {
		r.bar.Describe(page)
		_ = r.bar.Add(1)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	w       io.Writer
	mu      sync.Mutex
	total   int
	current int
}

func (r *CIReporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total = total
	r.current = 0
	fmt.Fprintf(r.w, "Building TOC for %d pages\n", total)
}

func (r *CIReporter) Step(page string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current++
	fmt.Fprintf(r.w, "[%d/%d] %s\n", r.current, r.total, page)
}

func (r *CIReporter) Finish() {
	fmt.Fprintln(r.w, "TOC build complete")
}
