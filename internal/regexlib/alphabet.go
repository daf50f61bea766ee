package regexlib

import (
	"fmt"
	"strings"
)

// Blank marks tape cells beyond the written input. It is never part of an alphabet.
const Blank = '_'

// runeSet keeps insertion order so that alphabets and classes expand deterministically.
type runeSet struct {
	order []rune
	index map[rune]struct{}
}

func newRuneSet() *runeSet { return &runeSet{index: map[rune]struct{}{}} }

func (s *runeSet) add(rs ...rune) {
	for _, r := range rs {
		if _, ok := s.index[r]; ok {
			continue
		}
		s.index[r] = struct{}{}
		s.order = append(s.order, r)
	}
}

func (s *runeSet) has(r rune) bool {
	_, ok := s.index[r]
	return ok
}

func (s *runeSet) len() int      { return len(s.order) }
func (s *runeSet) runes() []rune { return append([]rune(nil), s.order...) }

// printable is the universe a negated alphabet expression is resolved against.
func printable() []rune {
	out := make([]rune, 0, 0x7f-0x20)
	for r := rune(0x20); r < 0x7f; r++ {
		if r != Blank {
			out = append(out, r)
		}
	}
	return out
}

// ExpandAlphabet resolves an alphabet written with character-class syntax: plain symbols
// ("abc"), ranges ("a-c"), escapes ("\-") and a leading ^ for the printable ASCII symbols not
// listed. Operator characters stand for themselves; a lone "^" is the caret itself, and \^
// spells a leading caret that is not a negation. Order of first appearance is kept and
// duplicates are dropped. An empty expression yields a nil alphabet.
func ExpandAlphabet(expr string) ([]rune, error) {
	switch expr {
	case "":
		return nil, nil
	case "^":
		return []rune{'^'}, nil
	}
	p := newParser(expr, &NFA{}, nil)
	set, err := p.parseClass(tEOF, printable(), true)
	if err != nil {
		return nil, fmt.Errorf("alphabet %q: %w", expr, err)
	}
	if err := checkAlphabet(set); err != nil {
		return nil, err
	}
	return set, nil
}

func checkAlphabet(alphabet []rune) error {
	for _, r := range alphabet {
		if r == Blank {
			return fmt.Errorf("alphabet %q: %w", string(alphabet), ErrBlankInAlphabet)
		}
	}
	return nil
}

func alphabetRequired(what string, offset int) error {
	return fmt.Errorf("%w for %s (at index %d)", ErrAlphabetRequired, what, offset)
}

// FormatAlphabet renders symbols back to a plain alphabet string, escaping the characters
// ExpandAlphabet would otherwise interpret.
func FormatAlphabet(alphabet []rune) string {
	var b strings.Builder
	for i, r := range alphabet {
		if r == '\\' || r == '-' || (i == 0 && r == '^') {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
