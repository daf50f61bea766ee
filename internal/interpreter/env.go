package interpreter

import (
	"fmt"

	"turingregex/internal/turing"
)

// Environment indexes a program's rules by state and symbol.
type Environment struct {
	rules map[string]map[rune]turing.Rule
}

func NewEnvironment(p *turing.Program) *Environment {
	e := &Environment{rules: make(map[string]map[rune]turing.Rule, len(p.States))}
	for _, s := range p.States {
		byRead := make(map[rune]turing.Rule, len(s.Rules))
		for _, r := range s.Rules {
			// first rule wins, as in a linear scan
			if _, ok := byRead[r.Read]; !ok {
				byRead[r.Read] = r
			}
		}
		e.rules[s.Name] = byRead
	}
	return e
}

// Has reports whether the state has any rules at all.
func (e *Environment) Has(state string) bool {
	_, ok := e.rules[state]
	return ok
}

func (e *Environment) Get(state string, sym rune) (turing.Rule, bool) {
	r, ok := e.rules[state][sym]
	return r, ok
}

func (e *Environment) String() string {
	return fmt.Sprintf("%d states", len(e.rules))
}
