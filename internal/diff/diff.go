// Package diff shows what changed in a note since it was created.
package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Unified returns a unified diff from before to after. It is empty when the
// two are equal.
func Unified(name, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name+" (created)", name, before, edits))
}

// Render wraps a unified diff in a diff code fence and renders it for the
// terminal. The fenced markdown is returned if rendering fails.
func Render(unified string) string {
	if !strings.HasSuffix(unified, "\n") {
		unified += "\n"
	}
	fenced := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return fenced
	}

	rendered, err := renderer.Render(fenced)
	if err != nil {
		return fenced
	}

	return rendered
}
