// Package notice shows short, transient messages to the user.
package notice

import (
	"fmt"
	"io"

	"github.com/gerunddev/weeknote/internal/styles"
)

// Notifier shows one-line notices.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// Terminal prints notices as styled lines.
type Terminal struct {
	w io.Writer
}

// NewTerminal returns a Notifier writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Success(msg string) {
	fmt.Fprintln(t.w, styles.SuccessStyle.Render("✓ "+msg))
}

func (t *Terminal) Failure(msg string) {
	fmt.Fprintln(t.w, styles.ErrorStyle.Render("✗ "+msg))
}

// Recorder keeps notices in memory. Useful in tests and for callers that
// render notices themselves.
type Recorder struct {
	Successes []string
	Failures  []string
}

func (r *Recorder) Success(msg string) {
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Failure(msg string) {
	r.Failures = append(r.Failures, msg)
}
