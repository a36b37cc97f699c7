package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Progress draws a one-line progress bar for a batch of files. It is safe
// for concurrent use.
type Progress struct {
	mu      sync.Mutex
	writer  io.Writer
	total   int
	done    int
	started time.Time
}

// NewProgress creates a progress bar for total files on w, usually stderr.
func NewProgress(w io.Writer, total int) *Progress {
	p := &Progress{
		writer:  w,
		total:   total,
		started: time.Now(),
	}
	p.mu.Lock()
	p.render()
	p.mu.Unlock()
	return p
}

// Increment marks one more file as linted.
func (p *Progress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done < p.total {
		p.done++
	}
	p.render()
}

// Finish completes the bar and moves to the next line.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = p.total
	p.render()
	fmt.Fprintln(p.writer)
}

func (p *Progress) render() {
	if p.total == 0 {
		return
	}

	percent := float64(p.done) / float64(p.total) * 100
	barWidth := 30
	filled := int(float64(barWidth) * percent / 100)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	rate := 0.0
	if elapsed := time.Since(p.started).Seconds(); elapsed > 0 {
		rate = float64(p.done) / elapsed
	}

	fmt.Fprintf(p.writer, "\rLinting: [%s] %.1f%% (%d/%d) %.1f files/s",
		bar, percent, p.done, p.total, rate)
}
