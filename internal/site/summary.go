package site

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/apitoc/internal/apitoc"
)

// Failure records a page that could not be processed.
type Failure struct {
	Page  string `json:"page"`
	Error string `json:"error"`
}

// Summary aggregates the outcome of a site run.
type Summary struct {
	Pages       int            `json:"pages"`
	Changed     int            `json:"changed"`
	Entries     int            `json:"entries"`
	ByKind      map[string]int `json:"by_kind"`
	NoContainer []string       `json:"no_container,omitempty"`
	Failures    []Failure      `json:"failures,omitempty"`
	Duration    time.Duration  `json:"duration"`
}

func newSummary() *Summary {
	return &Summary{ByKind: make(map[string]int)}
}

func (s *Summary) add(r pageResult) {
	s.Pages++
	if r.err != nil {
		s.Failures = append(s.Failures, Failure{Page: r.rel, Error: r.err.Error()})
		sort.Slice(s.Failures, func(i, j int) bool { return s.Failures[i].Page < s.Failures[j].Page })
		return
	}
	if r.outcome.Changed {
		s.Changed++
	}
	if r.outcome.Containers == 0 {
		s.NoContainer = append(s.NoContainer, r.rel)
		sort.Strings(s.NoContainer)
		return
	}
	s.Entries += len(r.outcome.Entries)
	for _, kind := range apitoc.Kinds {
		if n := r.outcome.Count(kind); n > 0 {
			s.ByKind[kind.String()] += n
		}
	}
}

// Failed reports whether any page failed.
func (s *Summary) Failed() bool {
	return len(s.Failures) > 0
}

// WriteText prints a human-readable report of the run.
func (s *Summary) WriteText(w io.Writer) error {
	var kinds []string
	for _, kind := range apitoc.Kinds {
		kinds = append(kinds, fmt.Sprintf("%s=%d", kind, s.ByKind[kind.String()]))
	}
	lines := []string{
		fmt.Sprintf("Pages:    %d", s.Pages),
		fmt.Sprintf("Changed:  %d", s.Changed),
		fmt.Sprintf("Entries:  %d (%s)", s.Entries, strings.Join(kinds, " ")),
		fmt.Sprintf("Duration: %s", s.Duration.Round(time.Millisecond)),
	}
	for _, p := range s.NoContainer {
		lines = append(lines, "No container: "+p)
	}
	for _, f := range s.Failures {
		lines = append(lines, fmt.Sprintf("Failed: %s: %s", f.Page, f.Error))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
