// Package sitetest builds throwaway documentation sites on disk for tests.
package sitetest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// APIPage is a rendered API page in the layout the TOC builder targets: an empty container,
// one primary and one secondary heading, a class term and a method term.
const APIPage = `<html><head></head><body><div class="apitoc"></div>
<h1>Feeds<a class="headerlink" href="#feeds">¶</a></h1>
<h2>Parsing<a class="headerlink" href="#parsing">¶</a></h2>
<dl class="class"><dt id="Feed"><em>class </em><tt class="descname">Feed</tt><a class="headerlink" href="#Feed">¶</a></dt>
<dd><dl class="method"><dt id="Feed.fetch"><tt class="descname">fetch</tt>()<a class="headerlink" href="#Feed.fetch">¶</a></dt></dl></dd></dl>
</body></html>`

// Site is a generated site rooted in a test temp directory.
type Site struct {
	t    *testing.T
	Root string
}

// New writes files, keyed by slash-separated path, under a fresh temp directory.
func New(t *testing.T, files map[string]string) *Site {
	t.Helper()
	s := &Site{t: t, Root: t.TempDir()}
	for rel, content := range files {
		s.Write(rel, content)
	}
	return s
}

// Path returns the absolute path of rel.
func (s *Site) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// Write creates or replaces rel, creating parent directories.
func (s *Site) Write(rel, content string) *Site {
	s.t.Helper()
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.t.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		s.t.Fatalf("Failed to write %s: %v", rel, err)
	}
	return s
}

// Read returns the content of rel.
func (s *Site) Read(rel string) string {
	s.t.Helper()
	// #nosec G304 - test helper, paths are controlled by test code
	data, err := os.ReadFile(s.Path(rel))
	if err != nil {
		s.t.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}

// AssertPageContains validates that rel contains expected.
func (s *Site) AssertPageContains(rel, expected string) *Site {
	s.t.Helper()
	if content := s.Read(rel); !strings.Contains(content, expected) {
		s.t.Errorf("Expected page %s to contain %q\nActual content:\n%s", rel, expected, content)
	}
	return s
}

// AssertPageEquals validates that rel holds exactly expected.
func (s *Site) AssertPageEquals(rel, expected string) *Site {
	s.t.Helper()
	if content := s.Read(rel); content != expected {
		s.t.Errorf("Expected page %s to be unchanged\nActual content:\n%s", rel, content)
	}
	return s
}

// AssertNoTempFiles validates that no temporary files from atomic writes were left behind.
func (s *Site) AssertNoTempFiles() *Site {
	s.t.Helper()
	err := filepath.WalkDir(s.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmp") {
			s.t.Errorf("Unexpected temporary file %s", path)
		}
		return nil
	})
	if err != nil {
		s.t.Errorf("Failed to walk %s: %v", s.Root, err)
	}
	return s
}
