package regexlib

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// ExportDOT writes a Graphviz rendering of a *DFA or *NFA to w. DFA edges sharing a target
// are merged into one edge whose label compacts runs of adjacent alphabet symbols (a-d).
func ExportDOT(w io.Writer, g any) error {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("    rankdir=LR;\n")

	switch t := g.(type) {

	//------------------------------------------------------------------ DFA
	case *DFA:
		order := symbolOrder(t.Alpha)
		for _, s := range t.States {
			shape := "circle"
			if s.Goal {
				shape = "doublecircle"
			}
			fmt.Fprintf(&b, "    q%d [shape=%s];\n", s.ID, shape)

			byTarget := map[int][]rune{}
			for r, to := range s.Next {
				byTarget[to] = append(byTarget[to], r)
			}
			targets := make([]int, 0, len(byTarget))
			for to := range byTarget {
				targets = append(targets, to)
			}
			sort.Ints(targets)
			for _, to := range targets {
				label := compactLabel(byTarget[to], order)
				fmt.Fprintf(&b, "    q%d -> q%d [label=\"%s\"];\n", s.ID, to, dotEscape(label))
			}
		}
		fmt.Fprintf(&b, "    _start [shape=point]; _start -> q%d;\n", 0)

	//------------------------------------------------------------------ NFA
	case *NFA:
		visited := map[int]bool{}
		var dfs func(int)
		dfs = func(s int) {
			if visited[s] {
				return
			}
			visited[s] = true
			st := t.states[s]
			shape := "circle"
			if st.open {
				shape = "doublecircle"
			}
			label := "λ"
			if st.kind == kindTerminal {
				label = string(st.sym)
			}
			fmt.Fprintf(&b, "    n%d [shape=%s,label=\"%d:%s\"];\n", s, shape, s, dotEscape(label))
			for _, to := range st.next {
				fmt.Fprintf(&b, "    n%d -> n%d;\n", s, to)
				dfs(to)
			}
		}
		dfs(t.Entry)
		fmt.Fprintf(&b, "    _start [shape=point]; _start -> n%d;\n", t.Entry)

	default:
		return fmt.Errorf("regexlib: cannot export %T as DOT", g)
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// symbolOrder gives each alphabet symbol its position; symbols outside the alphabet sort
// after it by code point.
func symbolOrder(alpha []rune) map[rune]int {
	order := make(map[rune]int, len(alpha))
	for i, r := range alpha {
		if _, ok := order[r]; !ok {
			order[r] = i
		}
	}
	return order
}

// compactLabel joins symbols with commas, collapsing three or more symbols that are
// consecutive in the alphabet into first-last.
func compactLabel(syms []rune, order map[rune]int) string {
	pos := func(r rune) int {
		if p, ok := order[r]; ok {
			return p
		}
		return len(order) + int(r)
	}
	sort.Slice(syms, func(i, j int) bool { return pos(syms[i]) < pos(syms[j]) })

	var parts []string
	for i := 0; i < len(syms); {
		j := i
		for j+1 < len(syms) && pos(syms[j+1]) == pos(syms[j])+1 {
			j++
		}
		switch {
		case j-i >= 2:
			parts = append(parts, string(syms[i])+"-"+string(syms[j]))
		default:
			for k := i; k <= j; k++ {
				parts = append(parts, string(syms[k]))
			}
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}

func dotEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
