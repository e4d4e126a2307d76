// Package progress renders a single-line terminal progress indicator: a
// bounded bar for batches of known size, or a spinner alone when the batch
// is a single item.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Display constants.
const (
	DefaultInterval = 200 * time.Millisecond
	barSize         = 30
	barComplete     = "█"
	barIncomplete   = "░"
	defaultText     = "Generating"
)

// ANSI sequences used while running.
const (
	clearLine  = "\r\033[2K"
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// spinnerFrames is the 4-symbol cycle advanced on every tick.
var spinnerFrames = []func(a ...interface{}) string{
	color.New(color.FgCyan).SprintFunc(),
	color.New(color.FgGreen).SprintFunc(),
	color.New(color.FgBlue).SprintFunc(),
	color.New(color.FgYellow).SprintFunc(),
}

var spinnerGlyphs = []string{"●", "◆", "■", "▲"}

var dimYellow = color.New(color.FgYellow, color.Faint).SprintFunc()

// Bar is a progress reporter. Its state is owned by the Bar and mutated only
// through its methods; the ticker goroutine and callers share it under mu.
type Bar struct {
	mu            sync.Mutex
	w             io.Writer
	indeterminate bool
	interval      time.Duration
	tty           bool

	total   int
	current int
	spin    int
	text    string
	title   string

	running bool
	stopCh  chan struct{}
	done    chan struct{}
}

// Option configures a Bar.
type Option func(*Bar)

// WithInterval overrides the spinner tick interval.
func WithInterval(d time.Duration) Option {
	return func(b *Bar) {
		if d > 0 {
			b.interval = d
		}
	}
}

// WithTerminal forces cursor hiding on or off. By default it follows
// color.NoColor, which is set when stdout is not a terminal.
func WithTerminal(tty bool) Option {
	return func(b *Bar) { b.tty = tty }
}

// New creates a Bar writing to w. With indeterminate set, only the spinner
// and text are shown.
func New(w io.Writer, indeterminate bool, opts ...Option) *Bar {
	b := &Bar{
		w:             w,
		indeterminate: indeterminate,
		interval:      DefaultInterval,
		tty:           !color.NoColor,
		text:          defaultText,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start resets the count to zero against total and starts the spinner.
// Calling Start on a running Bar only resets the count.
func (b *Bar) Start(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.total = max(total, 0)
	b.current = 0
	if b.running {
		b.render()
		return
	}

	b.running = true
	b.stopCh = make(chan struct{})
	b.done = make(chan struct{})
	if b.tty {
		fmt.Fprint(b.w, hideCursor)
	}
	b.render()

	go b.tick(b.stopCh, b.done)
}

// tick advances the spinner until stop is closed.
func (b *Bar) tick(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			b.mu.Lock()
			b.spin++
			b.render()
			b.mu.Unlock()
		}
	}
}

// Increment advances the count by n, capped at total in determinate mode.
func (b *Bar) Increment(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current += n
	if !b.indeterminate && b.total > 0 && b.current > b.total {
		b.current = b.total
	}
	b.render()
}

// UpdateNumber sets the count to v.
func (b *Bar) UpdateNumber(v int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = max(v, 0)
	b.render()
}

// UpdateText replaces the label shown after the spinner.
func (b *Bar) UpdateText(t string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.text = t
	b.render()
}

// UpdateTitle replaces the trailing title; empty hides it.
func (b *Bar) UpdateTitle(t string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.title = t
	b.render()
}

// Current returns the count.
func (b *Bar) Current() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Stop cancels the ticker, waits for it to exit and clears the line.
// Stop is a no-op on a Bar that is not running.
func (b *Bar) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	close(b.stopCh)
	done := b.done
	b.mu.Unlock()

	<-done

	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprint(b.w, clearLine)
	if b.tty {
		fmt.Fprint(b.w, showCursor)
	}
}

// render draws the current line. Caller must hold mu.
func (b *Bar) render() {
	if !b.running {
		return
	}
	fmt.Fprint(b.w, clearLine+b.line())
}

// line formats the state without terminal control sequences. Caller must hold mu.
func (b *Bar) line() string {
	var sb strings.Builder

	frame := b.spin % len(spinnerGlyphs)
	sb.WriteString("  ")
	sb.WriteString(spinnerFrames[frame](spinnerGlyphs[frame]))
	sb.WriteString(" ")
	sb.WriteString(b.text)

	if b.indeterminate {
		sb.WriteString(" ")
		sb.WriteString(dimYellow("..."))
	} else {
		fmt.Fprintf(&sb, "  %s %d/%d", bar(b.current, b.total), b.current, b.total)
	}

	if b.title != "" {
		sb.WriteString(" || ")
		sb.WriteString(b.title)
	}
	return sb.String()
}

// bar draws a barSize-cell bar for current out of total.
func bar(current, total int) string {
	filled := 0
	if total > 0 {
		filled = min(current*barSize/total, barSize)
	}
	return strings.Repeat(barComplete, filled) + strings.Repeat(barIncomplete, barSize-filled)
}
