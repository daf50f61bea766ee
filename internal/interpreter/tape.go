package interpreter

import (
	"strings"

	"turingregex/internal/turing"
)

// Tape is unbounded in both directions. Cells never written read as blank.
type Tape struct {
	cells  []rune
	origin int // index in cells of the first input cell
}

func NewTape(input string) *Tape {
	return &Tape{cells: []rune(input)}
}

// Read returns the symbol at pos, counted from the first input cell.
func (t *Tape) Read(pos int) rune {
	i := pos + t.origin
	if i < 0 || i >= len(t.cells) {
		return turing.Blank
	}
	return t.cells[i]
}

// Write stores sym at pos, growing the tape with blanks as needed.
func (t *Tape) Write(pos int, sym rune) {
	i := pos + t.origin
	if i < 0 {
		t.cells = append(blanks(-i), t.cells...)
		t.origin -= i
		i = 0
	}
	if i >= len(t.cells) {
		t.cells = append(t.cells, blanks(i-len(t.cells)+1)...)
	}
	t.cells[i] = sym
}

// String returns the tape contents without the blanks on either side.
func (t *Tape) String() string {
	return strings.Trim(string(t.cells), string(turing.Blank))
}

// Span returns the written part of the tape and the position of its first cell.
func (t *Tape) Span() (string, int) {
	return string(t.cells), -t.origin
}

func blanks(n int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = turing.Blank
	}
	return out
}
