package progress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{w: &buf}

	r.Start(2)
	r.Step("a.html")
	r.Step("b.html")
	r.Finish()

	assert.Equal(t, "Building TOC for 2 pages\n[1/2] a.html\n[2/2] b.html\nTOC build complete\n", buf.String())
}

func TestCIReporter_ConcurrentSteps(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{w: &buf}
	r.Start(50)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Step("p.html")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, r.current)
}

func TestNewReporter_CI(t *testing.T) {
	t.Setenv("CI", "true")
	_, ok := NewReporter(&bytes.Buffer{}).(*CIReporter)
	assert.True(t, ok)
}

func TestNewReporter_Terminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	var buf bytes.Buffer
	r := NewReporter(&buf)
	_, ok := r.(*TerminalReporter)
	assert.True(t, ok)

	r.Start(1)
	r.Step("a.html")
	r.Finish()
}
