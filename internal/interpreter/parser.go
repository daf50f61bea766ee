package interpreter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"turingregex/internal/turing"
)

// Document is the text table format: headers followed by two-line rules
//
//	name: Accepts inputs matching regex 'ab'
//	init: regex0
//	accept: regex_accept
//
//	// goal
//	regex0,a
//	regex1,a,>
type Document struct {
	Headers []*Header `parser:"@@*"`
	Entries []*Entry  `parser:"@@*"`
}

type Header struct {
	Line string `parser:"@Header"`
}

type Entry struct {
	Comment *string     `parser:"  @Comment"`
	Rule    *Transition `parser:"| @@"`
}

type Transition struct {
	State string `parser:"@Ident ','"`
	Read  string `parser:"@Ident"`
	Next  string `parser:"@Ident ','"`
	Write string `parser:"@Ident ','"`
	Move  string `parser:"@Ident"`
}

var tableLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Header", Pattern: `(?:name|init|accept|reject):[^\n]*`},
	{Name: "Ident", Pattern: `[^,\s]+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[Document](
	participle.Lexer(tableLexer),
	participle.Elide("Whitespace"),
)

func Parse(data string) (*Document, error) {
	return parser.ParseString("table", data)
}

// Load parses a text table into a program.
func Load(data string) (*turing.Program, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	return doc.Program()
}

// Program converts the parsed document. A comment line belongs to the state of the rule after it.
func (d *Document) Program() (*turing.Program, error) {
	p := &turing.Program{}
	for _, h := range d.Headers {
		key, value, _ := strings.Cut(h.Line, ":")
		value = strings.TrimSpace(value)
		switch key {
		case "name":
			p.Name = value
		case "init":
			p.Initial = value
		case "accept":
			p.Accept = value
		case "reject":
			p.Reject = value
		}
	}
	if p.Initial == "" {
		return nil, fmt.Errorf("load table: missing init header")
	}

	index := map[string]*turing.State{}
	pending := ""
	for _, e := range d.Entries {
		if e.Comment != nil {
			pending = strings.TrimSpace(strings.TrimPrefix(*e.Comment, "//"))
			continue
		}
		t := e.Rule
		rule, err := t.rule()
		if err != nil {
			return nil, err
		}
		s, ok := index[t.State]
		if !ok {
			s = &turing.State{Name: t.State}
			index[t.State] = s
			p.States = append(p.States, s)
		}
		if pending != "" {
			if s.Comment == "" {
				s.Comment = pending
			}
			pending = ""
		}
		s.Rules = append(s.Rules, rule)
	}
	return p, nil
}

func (t *Transition) rule() (turing.Rule, error) {
	read, err := symbol(t.Read)
	if err != nil {
		return turing.Rule{}, fmt.Errorf("state %s: %w", t.State, err)
	}
	write, err := symbol(t.Write)
	if err != nil {
		return turing.Rule{}, fmt.Errorf("state %s: %w", t.State, err)
	}
	move, err := turing.ParseMove(t.Move)
	if err != nil {
		return turing.Rule{}, fmt.Errorf("state %s: %w", t.State, err)
	}
	return turing.Rule{Read: read, Write: write, Move: move, Next: t.Next}, nil
}

func symbol(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("symbol %q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
