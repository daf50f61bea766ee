package regexlib

import (
	"fmt"
	"sort"
	"strings"
)

// DFAState is one state of a DFA. Raw states carry the NFA closure they were built from;
// minimized states carry the raw states merged into them.
type DFAState struct {
	ID   int
	Goal bool
	Next map[rune]int // symbol -> successor ID

	Key     []int // sorted NFA state ids (raw DFA only)
	Members []int // raw DFA ids merged into this state (minimized DFA only)
}

// Symbols returns the symbols the state has a transition on, in ascending order.
func (s *DFAState) Symbols() []rune {
	out := make([]rune, 0, len(s.Next))
	for r := range s.Next {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DFA is a deterministic automaton. States[0] is the initial state.
type DFA struct {
	States  []*DFAState
	Alpha   []rune // explicit alphabet, or the symbols observed on transitions
	Minimal bool
}

// Start returns the initial state.
func (d *DFA) Start() *DFAState { return d.States[0] }

// Step follows the transition of state on sym.
func (d *DFA) Step(state int, sym rune) (int, bool) {
	next, ok := d.States[state].Next[sym]
	return next, ok
}

// Symbols returns every symbol used on some transition, in ascending order.
func (d *DFA) Symbols() []rune {
	seen := map[rune]struct{}{}
	for _, s := range d.States {
		for r := range s.Next {
			seen[r] = struct{}{}
		}
	}
	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EndSymbols returns every symbol that leads some state into a goal state, ascending.
func (d *DFA) EndSymbols() []rune {
	seen := map[rune]struct{}{}
	for _, s := range d.States {
		for r, to := range s.Next {
			if d.States[to].Goal {
				seen[r] = struct{}{}
			}
		}
	}
	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String dumps the DFA, one state per line followed by its transitions.
func (d *DFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DFA: (%d states)\n", len(d.States))
	for _, s := range d.States {
		suffix := "   "
		if s.Goal {
			suffix = " ⊙ "
		}
		fmt.Fprintf(&b, "  %d%s\n", s.ID, suffix)
		for _, r := range s.Symbols() {
			fmt.Fprintf(&b, "    %c -> %d\n", r, s.Next[r])
		}
	}
	return b.String()
}

// determinize runs the subset construction from a synthetic entry pointing at entry.
// States are numbered in discovery order.
func determinize(n *NFA, entry int) *DFA {
	start := n.closure([]int{n.choice(false, entry)})
	index := newVecIndex()

	dStart := &DFAState{ID: 0, Goal: n.goal(start), Next: map[rune]int{}, Key: start}
	index.insert(start, 0)
	states := []*DFAState{dStart}
	queue := []*DFAState{dStart}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, sym := range n.symbols(cur.Key) {
			clo := n.move(cur.Key, sym)
			id, exists := index.lookup(clo)
			if !exists {
				id = len(states)
				d := &DFAState{ID: id, Goal: n.goal(clo), Next: map[rune]int{}, Key: clo}
				index.insert(clo, id)
				states = append(states, d)
				queue = append(queue, d)
			}
			cur.Next[sym] = id
		}
	}
	return &DFA{States: states}
}

// stopAtGoals drops every transition leaving a goal state: once a goal is reached the
// input is accepted and nothing further is read.
func (d *DFA) stopAtGoals() {
	for _, s := range d.States {
		if s.Goal {
			s.Next = map[rune]int{}
		}
	}
}
