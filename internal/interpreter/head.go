package interpreter

import (
	"fmt"

	"turingregex/internal/turing"
)

// Head is the read/write head, positioned relative to the first input cell.
type Head struct {
	Pos int
}

func (h *Head) Move(m turing.Move) {
	switch m {
	case turing.Left:
		h.Pos--
	case turing.Right:
		h.Pos++
	}
}

func (h *Head) String() string {
	return fmt.Sprintf("@%d", h.Pos)
}
