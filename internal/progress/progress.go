// Package progress reports long-running CLI work such as imports. Output
// goes to stderr so stdout stays clean for piping, and updates are only
// drawn on a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the minimum number of items before progress is shown.
const minItems = 5

// Progress tracks and displays operation progress.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
	width   int // widest line drawn, for clearing
}

// New creates a progress reporter on stderr.
func New(label string, total int) *Progress {
	return NewWriter(os.Stderr, label, total, term.IsTerminal(int(os.Stderr.Fd())))
}

// NewWriter creates a progress reporter on w. Updates are drawn only when
// tty is true and total reaches minItems.
func NewWriter(w io.Writer, label string, total int, tty bool) *Progress {
	return &Progress{w: w, label: label, total: total, isTTY: tty}
}

func (p *Progress) visible() bool {
	return p.isTTY && p.total >= minItems
}

// Increment advances the progress counter by one.
func (p *Progress) Increment() {
	if p.current < p.total {
		p.current++
	}
}

// Current returns the number of completed items.
func (p *Progress) Current() int {
	return p.current
}

// Print redraws the progress line in place.
func (p *Progress) Print() {
	if !p.visible() {
		return
	}
	line := fmt.Sprintf("%s... %d/%d (%d%%)", p.label, p.current, p.total, p.current*100/p.total)
	if len(line) > p.width {
		p.width = len(line)
	}
	fmt.Fprintf(p.w, "\r%s", line)
}

// Done clears the progress line to make way for final output.
func (p *Progress) Done() {
	if !p.visible() || p.width == 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.width))
}
