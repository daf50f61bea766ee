package turing

import (
	"fmt"

	"turingregex/internal/regexlib"
)

// findNames names the helper states of the find protocol.
type findNames struct {
	names
	rewind, drop   string
	cut, back      string
	clear, erase   string
	trim, backward string
}

func newFindNames(n names) findNames {
	return findNames{
		names:    n,
		rewind:   n.prefix + "_rewind",
		drop:     n.prefix + "_drop",
		cut:      n.prefix + "_cut",
		back:     n.prefix + "_back",
		clear:    n.prefix + "_clear",
		erase:    n.prefix + "_erase",
		trim:     n.prefix + "_trim",
		backward: n.prefix + "_return",
	}
}

func (n findNames) scan(id int) string   { return fmt.Sprintf("%s_find%d", n.prefix, id) }
func (n findNames) extend(id int) string { return fmt.Sprintf("%s_match%d", n.prefix, id) }

// synthFind builds a program that leaves the leftmost-longest match of the DFA on the tape.
//
// The find group runs the DFA from the left end of the remaining input until a goal is reached.
// A failed attempt rewinds to the left end and drops the first symbol. Once a goal is reached
// the match group keeps reading for a longer match. When it gets stuck in a goal state, the rest
// of the tape is cut and the machine accepts. When it gets stuck elsewhere, the tape is trimmed
// back to the last end symbol and the match group reruns from the left end to check the
// shortened candidate, repeating until a candidate ends in a goal state.
func synthFind(d *regexlib.DFA, alphabet []rune, n names) (*Program, error) {
	if d.Start().Goal {
		return nil, ErrEmptyMatch
	}
	fn := newFindNames(n)
	p := &Program{Initial: fn.scan(0), Accept: n.accept, Reject: n.reject, Alphabet: alphabet}
	b := newBuilder(p)
	symbols := tapeSymbols(d, alphabet)
	ends := map[rune]bool{}
	for _, r := range d.EndSymbols() {
		ends[r] = true
	}

	// next state of the search once the DFA has consumed a symbol
	advance := func(to int) string {
		if d.States[to].Goal {
			return fn.extend(to)
		}
		return fn.scan(to)
	}

	for _, s := range d.States {
		if s.Goal {
			continue
		}
		name := fn.scan(s.ID)
		comment := ""
		if s.ID == 0 {
			comment = "search for a match starting at the left end of the tape"
		}
		b.state(name, comment)
		for _, r := range symbols {
			if to, ok := s.Next[r]; ok {
				b.keep(name, r, Right, advance(to))
			} else {
				b.keep(name, r, Left, fn.rewind)
			}
		}
		b.keep(name, Blank, Left, fn.rewind)
	}

	b.state(fn.rewind, "no match here, go back to the left end")
	for _, r := range symbols {
		b.keep(fn.rewind, r, Left, fn.rewind)
	}
	b.keep(fn.rewind, Blank, Right, fn.drop)

	b.state(fn.drop, "erase the first symbol and search again")
	for _, r := range symbols {
		b.rule(fn.drop, r, Blank, Right, fn.scan(0))
	}
	if n.reject != "" {
		b.keep(fn.drop, Blank, Stay, n.reject)
	}

	for _, s := range d.States {
		name := fn.extend(s.ID)
		comment := ""
		if s.ID == 0 {
			comment = "verify the candidate from the left end"
		} else if s.Goal {
			comment = "matched, look for a longer match"
		}
		b.state(name, comment)
		for _, r := range symbols {
			if to, ok := s.Next[r]; ok {
				b.keep(name, r, Right, fn.extend(to))
			} else if s.Goal {
				b.rule(name, r, Blank, Right, fn.cut)
			} else {
				b.rule(name, r, Blank, Right, fn.clear)
			}
		}
		if s.Goal {
			b.keep(name, Blank, Left, n.accept)
		} else {
			b.keep(name, Blank, Left, fn.erase)
		}
	}

	b.state(fn.cut, "the match ends here, clear the rest of the tape")
	for _, r := range symbols {
		b.rule(fn.cut, r, Blank, Right, fn.cut)
	}
	b.keep(fn.cut, Blank, Left, fn.back)

	b.state(fn.back, "return to the last symbol of the match")
	b.keep(fn.back, Blank, Left, fn.back)
	for _, r := range symbols {
		b.keep(fn.back, r, Stay, n.accept)
	}

	b.state(fn.clear, "the candidate failed, clear the rest of the tape")
	for _, r := range symbols {
		b.rule(fn.clear, r, Blank, Right, fn.clear)
	}
	b.keep(fn.clear, Blank, Left, fn.erase)

	b.state(fn.erase, "drop the last symbol of the candidate")
	b.keep(fn.erase, Blank, Left, fn.erase)
	for _, r := range symbols {
		b.rule(fn.erase, r, Blank, Left, fn.trim)
	}

	b.state(fn.trim, "shorten the candidate to its last end symbol")
	for _, r := range symbols {
		if ends[r] {
			b.keep(fn.trim, r, Left, fn.backward)
		} else {
			b.rule(fn.trim, r, Blank, Left, fn.trim)
		}
	}
	b.keep(fn.trim, Blank, Stay, n.accept)

	b.state(fn.backward, "go back to the left end of the candidate")
	for _, r := range symbols {
		b.keep(fn.backward, r, Left, fn.backward)
	}
	b.keep(fn.backward, Blank, Right, fn.extend(0))

	return p, nil
}
