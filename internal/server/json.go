package server

import (
	"turingregex/internal/regexlib"
	"turingregex/internal/turing"
)

type DFAState struct {
	ID   int            `json:"id"`
	Goal bool           `json:"goal"`
	Next map[string]int `json:"next"`
}

type DFA struct {
	Alphabet string     `json:"alphabet"`
	States   []DFAState `json:"states"`
}

type Rule struct {
	Read  string `json:"read"`
	Write string `json:"write"`
	Move  string `json:"move"`
	Next  string `json:"next"`
}

type State struct {
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
	Rules   []Rule `json:"rules"`
}

type Program struct {
	Name    string  `json:"name"`
	Initial string  `json:"initial"`
	Accept  string  `json:"accept"`
	Reject  string  `json:"reject,omitempty"`
	States  []State `json:"states"`
}

func dfaJSON(d *regexlib.DFA) DFA {
	out := DFA{Alphabet: string(d.Alpha), States: make([]DFAState, len(d.States))}
	for i, s := range d.States {
		next := make(map[string]int, len(s.Next))
		for r, to := range s.Next {
			next[string(r)] = to
		}
		out.States[i] = DFAState{ID: s.ID, Goal: s.Goal, Next: next}
	}
	return out
}

func programJSON(p *turing.Program) Program {
	out := Program{Name: p.Name, Initial: p.Initial, Accept: p.Accept, Reject: p.Reject, States: make([]State, len(p.States))}
	for i, s := range p.States {
		rules := make([]Rule, len(s.Rules))
		for j, r := range s.Rules {
			rules[j] = Rule{Read: string(r.Read), Write: string(r.Write), Move: r.Move.String(), Next: r.Next}
		}
		out.States[i] = State{Name: s.Name, Comment: s.Comment, Rules: rules}
	}
	return out
}
