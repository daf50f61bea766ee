package interpreter

import (
	"fmt"
	"io"
	"strings"
)

// Display writes one trace line: step, state and the tape with the head cell bracketed.
func (c *Context) Display(w io.Writer) {
	span, first := c.Tape.Span()
	cells := []rune(span)
	var b strings.Builder
	lo, hi := min(first, c.Head.Pos), max(first+len(cells)-1, c.Head.Pos)
	for pos := lo; pos <= hi; pos++ {
		sym := c.Tape.Read(pos)
		if pos == c.Head.Pos {
			fmt.Fprintf(&b, "[%c]", sym)
		} else {
			b.WriteRune(sym)
		}
	}
	fmt.Fprintf(w, "%5d %-16s %s\n", c.Steps, c.State, b.String())
}
