package turing

import (
	"fmt"

	"turingregex/internal/log"
	"turingregex/internal/regexlib"
)

// DefaultPrefix starts every generated state name unless the request sets another one.
const DefaultPrefix = "regex"

// Request describes one compilation.
type Request struct {
	Pattern string
	// Alphabet is an alphabet expression (abc, a-c, ^x). Empty means none was given.
	Alphabet string
	// Accept defaults to <prefix>_accept.
	Accept string
	// Reject is optional; without it rejection is left to missing rules.
	Reject string
	Prefix string
	Mode   Mode
}

// Result holds the automaton the program was synthesized from and the program itself.
type Result struct {
	Regex   *regexlib.Regex
	DFA     *regexlib.DFA
	Program *Program
}

// Compile parses the request's pattern, builds its minimized DFA and synthesizes the program
// for the requested mode.
func Compile(req Request) (*Result, error) {
	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}

	alphabet, err := regexlib.ExpandAlphabet(req.Alphabet)
	if err != nil {
		return nil, err
	}
	if alphabet == nil {
		switch {
		case mode != Match:
			return nil, fmt.Errorf("%w in %s mode", regexlib.ErrAlphabetRequired, mode)
		case req.Reject != "":
			return nil, fmt.Errorf("%w when a reject state is given", regexlib.ErrAlphabetRequired)
		}
	}

	opts := regexlib.Options{Alphabet: alphabet}
	if mode == Contains {
		opts.Unanchored = true
		opts.StopAtGoal = true
	}
	re, err := regexlib.Compile(req.Pattern, opts)
	if err != nil {
		return nil, err
	}

	n := names{prefix: req.Prefix, accept: req.Accept, reject: req.Reject}
	if n.prefix == "" {
		n.prefix = DefaultPrefix
	}
	if n.accept == "" {
		n.accept = n.prefix + "_accept"
	}

	d := re.DFA()
	var prog *Program
	switch mode {
	case Match:
		prog = synthMatch(d, alphabet, n)
		prog.Name = fmt.Sprintf("Accepts inputs matching regex '%s'", req.Pattern)
	case Contains:
		prog = synthContains(d, alphabet, n)
		prog.Name = fmt.Sprintf("Accepts inputs containing a match of regex '%s'", req.Pattern)
	case Find:
		if prog, err = synthFind(d, alphabet, n); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", req.Pattern, err)
		}
		prog.Name = fmt.Sprintf("Finds the leftmost-longest match of regex '%s'", req.Pattern)
	}

	log.Debug().
		Str("pattern", re.Pattern()).
		Bool("unanchored", re.Options().Unanchored).
		Str("mode", string(mode)).
		Int("dfa_states", len(d.States)).
		Int("states", len(prog.States)).
		Int("rules", prog.RuleCount()).
		Msg("program synthesized")

	return &Result{Regex: re, DFA: d, Program: prog}, nil
}
