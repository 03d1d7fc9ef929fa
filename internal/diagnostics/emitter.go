package diagnostics

import (
	"fmt"
	"io"
	"strings"
)

// LineSource resolves a 1-based line number back to its source text, used
// for the caret snippet. *source.Buffer satisfies this.
type LineSource interface {
	Line(n int) string
}

// Emitter renders diagnostics in the plain-text format:
//
//	<Category>: at line <L>:<C> from "<file>"
//	    msg: <description>
//	    at: <source line contents>
//	        ^^^ (caret column-aligned)
//
// Cosmetic coloring is intentionally not implemented.
type Emitter struct {
	w     io.Writer
	lines LineSource
}

// NewEmitter builds an emitter writing to w, resolving snippet lines via lines.
func NewEmitter(w io.Writer, lines LineSource) *Emitter {
	return &Emitter{w: w, lines: lines}
}

// Emit renders a single diagnostic.
func (e *Emitter) Emit(d *Diagnostic) {
	fmt.Fprintf(e.w, "%s: at line %d:%d from %q\n", d.Category, d.Pos.Line, d.Pos.Column, d.File)
	fmt.Fprintf(e.w, "    msg: %s\n", d.Message)

	if e.lines != nil {
		line := e.lines.Line(d.Pos.Line)
		if line != "" {
			fmt.Fprintf(e.w, "    at: %s\n", line)
			col := d.Pos.Column
			if col < 1 {
				col = 1
			}
			fmt.Fprintf(e.w, "        %s^^^\n", strings.Repeat(" ", col-1))
		}
	}

	if d.Help != "" {
		fmt.Fprintf(e.w, "    help: %s\n", d.Help)
	}
}

// Summary writes the trailing error/warning count line.
func Summary(w io.Writer, errors, warnings int) {
	switch {
	case errors > 0 && warnings > 0:
		fmt.Fprintf(w, "\ncompilation failed with %d error(s) and %d warning(s)\n", errors, warnings)
	case errors > 0:
		fmt.Fprintf(w, "\ncompilation failed with %d error(s)\n", errors)
	case warnings > 0:
		fmt.Fprintf(w, "\ncompilation succeeded with %d warning(s)\n", warnings)
	}
}
