package turing

import (
	"fmt"

	"turingregex/internal/regexlib"
)

// names carries the state names shared by every synthesizer.
type names struct {
	prefix string
	accept string
	reject string
}

func (n names) dfa(id int) string { return fmt.Sprintf("%s%d", n.prefix, id) }

// tapeSymbols lists the alphabet followed by any transition symbol outside it.
func tapeSymbols(d *regexlib.DFA, alphabet []rune) []rune {
	out := append([]rune(nil), alphabet...)
	seen := map[rune]bool{}
	for _, r := range alphabet {
		seen[r] = true
	}
	for _, r := range d.Symbols() {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// synthMatch emits one state per DFA state reading the input left to right. A goal state
// accepts on the blank after the last symbol; with a reject state every other symbol,
// blank included, is routed there.
func synthMatch(d *regexlib.DFA, alphabet []rune, n names) *Program {
	p := &Program{Initial: n.dfa(0), Accept: n.accept, Reject: n.reject, Alphabet: alphabet}
	b := newBuilder(p)
	for _, s := range d.States {
		name := n.dfa(s.ID)
		comment := ""
		if s.Goal {
			comment = "goal"
		}
		b.state(name, comment)
		for _, r := range s.Symbols() {
			b.keep(name, r, Right, n.dfa(s.Next[r]))
		}
		if n.reject != "" {
			for _, r := range alphabet {
				if _, ok := s.Next[r]; !ok {
					b.keep(name, r, Stay, n.reject)
				}
			}
		}
		switch {
		case s.Goal:
			b.keep(name, Blank, Left, n.accept)
		case n.reject != "":
			b.keep(name, Blank, Stay, n.reject)
		}
	}
	return p
}
