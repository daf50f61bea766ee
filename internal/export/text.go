package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"turingregex/internal/turing"
)

// ErrUnsupportedSymbol is returned when a name or symbol cannot be written in the text format.
var ErrUnsupportedSymbol = errors.New("not representable in the text format")

// WriteText writes the program as a text transition table:
//
//	name: <description>
//	init: <initial state>
//	accept: <accept state>
//	reject: <reject state>   (only when set)
//
//	<state>,<read>
//	<next>,<write>,<move>
//
// with a blank line after each state and a // comment line before states that have one.
func WriteText(w io.Writer, p *turing.Program) error {
	if err := checkText(p); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "name: %s\n", p.Name)
	fmt.Fprintf(bw, "init: %s\n", p.Initial)
	fmt.Fprintf(bw, "accept: %s\n", p.Accept)
	if p.Reject != "" {
		fmt.Fprintf(bw, "reject: %s\n", p.Reject)
	}
	bw.WriteString("\n")
	for _, s := range p.States {
		if s.Comment != "" {
			fmt.Fprintf(bw, "// %s\n", s.Comment)
		}
		for _, r := range s.Rules {
			fmt.Fprintf(bw, "%s,%c\n", s.Name, r.Read)
			fmt.Fprintf(bw, "%s,%c,%s\n", r.Next, r.Write, r.Move)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

func checkText(p *turing.Program) error {
	names := []string{p.Initial, p.Accept}
	for _, s := range p.States {
		names = append(names, s.Name)
		for _, r := range s.Rules {
			if badSymbol(r.Read) {
				return fmt.Errorf("state %s reads %q: %w", s.Name, r.Read, ErrUnsupportedSymbol)
			}
			if badSymbol(r.Write) {
				return fmt.Errorf("state %s writes %q: %w", s.Name, r.Write, ErrUnsupportedSymbol)
			}
			names = append(names, r.Next)
		}
	}
	for _, n := range names {
		if n == "" || strings.ContainsFunc(n, badSymbol) {
			return fmt.Errorf("state name %q: %w", n, ErrUnsupportedSymbol)
		}
	}
	return nil
}

func badSymbol(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}
