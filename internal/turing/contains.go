package turing

import "turingregex/internal/regexlib"

// synthContains expects a DFA compiled with an alphabet loop in front and the transitions
// out of goal states removed. Reaching a goal accepts at once without reading further.
func synthContains(d *regexlib.DFA, alphabet []rune, n names) *Program {
	p := &Program{Initial: n.dfa(0), Accept: n.accept, Reject: n.reject, Alphabet: alphabet}
	b := newBuilder(p)
	symbols := tapeSymbols(d, alphabet)
	for _, s := range d.States {
		name := n.dfa(s.ID)
		if s.Goal {
			b.state(name, "goal, accepts whatever follows")
			for _, r := range symbols {
				b.keep(name, r, Left, n.accept)
			}
			b.keep(name, Blank, Left, n.accept)
			continue
		}
		b.state(name, "")
		for _, r := range s.Symbols() {
			b.keep(name, r, Right, n.dfa(s.Next[r]))
		}
		if n.reject == "" {
			continue
		}
		for _, r := range symbols {
			if _, ok := s.Next[r]; !ok {
				b.keep(name, r, Left, n.reject)
			}
		}
		b.keep(name, Blank, Left, n.reject)
	}
	return p
}
