package turing

import (
	"fmt"

	"turingregex/internal/regexlib"
)

// Blank is the symbol of every tape cell outside the written input.
const Blank = regexlib.Blank

// Move is a head motion: one cell left, one cell right, or none.
type Move byte

const (
	Left  Move = '<'
	Right Move = '>'
	Stay  Move = '-'
)

func (m Move) String() string { return string(rune(m)) }

// ParseMove accepts the one-character spellings used by the text table format.
func ParseMove(s string) (Move, error) {
	switch s {
	case "<":
		return Left, nil
	case ">":
		return Right, nil
	case "-":
		return Stay, nil
	}
	return 0, fmt.Errorf("invalid move %q, expected <, > or -", s)
}

// Rule fires when its state reads Read: it writes Write, moves the head and enters Next.
type Rule struct {
	Read  rune
	Write rune
	Move  Move
	Next  string
}

type State struct {
	Name    string
	Comment string
	Rules   []Rule
}

// Program is a synthesized transition table. Accept and Reject name halting states that have no
// rules and are not listed in States. Reject is empty when rejection is left implicit.
type Program struct {
	Name     string
	Initial  string
	Accept   string
	Reject   string
	Alphabet []rune
	States   []*State
}

// RuleCount returns the number of rules over all states.
func (p *Program) RuleCount() int {
	n := 0
	for _, s := range p.States {
		n += len(s.Rules)
	}
	return n
}

// builder keeps states in creation order and lets rules be added by state name.
type builder struct {
	prog  *Program
	index map[string]*State
}

func newBuilder(p *Program) *builder {
	return &builder{prog: p, index: map[string]*State{}}
}

func (b *builder) state(name, comment string) *State {
	if s, ok := b.index[name]; ok {
		if comment != "" && s.Comment == "" {
			s.Comment = comment
		}
		return s
	}
	s := &State{Name: name, Comment: comment}
	b.index[name] = s
	b.prog.States = append(b.prog.States, s)
	return s
}

func (b *builder) rule(from string, read, write rune, m Move, next string) {
	s := b.state(from, "")
	s.Rules = append(s.Rules, Rule{Read: read, Write: write, Move: m, Next: next})
}

// keep adds a rule that leaves the symbol read untouched.
func (b *builder) keep(from string, read rune, m Move, next string) {
	b.rule(from, read, read, m, next)
}
