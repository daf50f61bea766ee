package regexlib

import (
	"fmt"
	"sort"
	"strings"
)

type nfaKind uint8

const (
	kindChoice   nfaKind = iota // consumes nothing, fans out to next
	kindTerminal                // consumes sym, then continues with next
)

type nfaState struct {
	kind nfaKind
	sym  rune  // for kindTerminal
	next []int // successors, by arena index
	open bool  // exit still waiting for a successor; an accepting position
}

// NFA is a Thompson-style automaton kept in an arena. A state's identity is its index, so ids
// grow monotonically and are private to one compilation.
type NFA struct {
	states []nfaState
	Entry  int
}

// Len returns the number of states allocated so far.
func (n *NFA) Len() int { return len(n.states) }

// terminal allocates an open state that reads sym.
func (n *NFA) terminal(sym rune) int {
	n.states = append(n.states, nfaState{kind: kindTerminal, sym: sym, open: true})
	return len(n.states) - 1
}

// choice allocates an epsilon state fanning out to next.
func (n *NFA) choice(open bool, next ...int) int {
	n.states = append(n.states, nfaState{kind: kindChoice, next: append([]int(nil), next...), open: open})
	return len(n.states) - 1
}

// patch closes every open state reachable from entry by appending to as its successor. Each
// state is visited once, so loops built by * and + terminate and no successor is attached twice.
func (n *NFA) patch(entry, to int) {
	visited := make([]bool, len(n.states))
	stack := []int{entry}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[s] {
			continue
		}
		visited[s] = true
		// children are pushed before to is attached, so to is never walked into
		stack = append(stack, n.states[s].next...)
		if n.states[s].open {
			n.states[s].next = append(n.states[s].next, to)
			n.states[s].open = false
		}
	}
}

// clone copies the fragment reachable from entry and returns the copy's entry. The mapping
// from source to copy is memoized so shared states and loops are copied exactly once.
func (n *NFA) clone(entry int) int {
	mapping := make(map[int]int)
	var walk func(s int) int
	walk = func(s int) int {
		if c, ok := mapping[s]; ok {
			return c
		}
		src := n.states[s]
		c := len(n.states)
		n.states = append(n.states, nfaState{kind: src.kind, sym: src.sym, open: src.open})
		mapping[s] = c
		next := make([]int, len(src.next))
		for i, t := range src.next {
			next[i] = walk(t)
		}
		n.states[c].next = next
		return c
	}
	return walk(entry)
}

// closure returns the sorted set of states reachable from set without consuming input. Terminal
// successors are not entered: they are the symbols the set can read next.
func (n *NFA) closure(set []int) []int {
	visited := make([]bool, len(n.states))
	out := make([]int, 0, len(set))
	stack := make([]int, 0, len(set))
	for _, s := range set {
		if !visited[s] {
			visited[s] = true
			out = append(out, s)
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range n.states[s].next {
			if n.states[t].kind == kindChoice && !visited[t] {
				visited[t] = true
				out = append(out, t)
				stack = append(stack, t)
			}
		}
	}
	sort.Ints(out)
	return out
}

// symbols returns the sorted symbols readable from set (its fan-out).
func (n *NFA) symbols(set []int) []rune {
	seen := map[rune]struct{}{}
	for _, s := range set {
		for _, t := range n.states[s].next {
			if n.states[t].kind == kindTerminal {
				seen[n.states[t].sym] = struct{}{}
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

// move returns the closure of every terminal successor of set that reads sym.
func (n *NFA) move(set []int, sym rune) []int {
	var targets []int
	for _, s := range set {
		for _, t := range n.states[s].next {
			if n.states[t].kind == kindTerminal && n.states[t].sym == sym {
				targets = append(targets, t)
			}
		}
	}
	return n.closure(targets)
}

func (n *NFA) goal(set []int) bool {
	for _, s := range set {
		if n.states[s].open {
			return true
		}
	}
	return false
}

// String dumps the states reachable from Entry, one per line: id(symbol→successors).
func (n *NFA) String() string {
	var b strings.Builder
	b.WriteString("NFA:\n")
	seen := map[int]bool{n.Entry: true}
	todo := []int{n.Entry}
	for len(todo) > 0 {
		s := todo[0]
		todo = todo[1:]
		st := n.states[s]
		label := "λ"
		if st.kind == kindTerminal {
			label = string(st.sym)
		}
		out := make([]string, 0, len(st.next)+1)
		for _, t := range st.next {
			out = append(out, fmt.Sprint(t))
			if !seen[t] {
				seen[t] = true
				todo = append(todo, t)
			}
		}
		if st.open {
			out = append(out, "⊙")
		}
		fmt.Fprintf(&b, "  %d(%s→%s)\n", s, label, strings.Join(out, ","))
	}
	return b.String()
}
