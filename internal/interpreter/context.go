package interpreter

import "turingregex/internal/turing"

// Context is the configuration of a running machine.

type Context struct {
	Env   *Environment
	Head  *Head
	Tape  *Tape
	State string
	Steps int
}

func newContext(p *turing.Program, input string) *Context {
	return &Context{
		Env:   NewEnvironment(p),
		Head:  &Head{},
		Tape:  NewTape(input),
		State: p.Initial,
	}
}
