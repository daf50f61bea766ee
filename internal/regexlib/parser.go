package regexlib

import (
	"regexp"
	"strconv"
	"strings"
)

// maxRangeSize bounds a single a-z style range inside a character class.
const maxRangeSize = 1024

var repeatBounds = regexp.MustCompile(`^(\d+)(,(\d*))?$`)

type parser struct {
	lex      *lexer
	look     token
	nfa      *NFA
	alphabet []rune // nil when no explicit alphabet was given
}

func newParser(pat string, n *NFA, alphabet []rune) *parser {
	p := &parser{lex: newLexer(pat), nfa: n, alphabet: alphabet}
	p.look = p.lex.next()
	return p
}

func (p *parser) scan() { p.look = p.lex.next() }

// parse builds the whole pattern into the arena and returns the entry of its fragment.
func (p *parser) parse() (int, error) {
	entry, err := p.parseAlternation()
	if err != nil {
		return 0, err
	}
	if p.look.typ != tEOF {
		return 0, syntaxErrorf(p.look.pos, "unexpected trailing characters starting with %q", p.look)
	}
	return entry, nil
}

func (p *parser) parseAlternation() (int, error) {
	left, err := p.parseConcat()
	if err != nil {
		return 0, err
	}
	if p.look.typ != tUnion {
		return left, nil
	}
	p.scan()
	right, err := p.parseAlternation()
	if err != nil {
		return 0, err
	}
	// both sides keep their open exits; the choice forwards them as its own
	return p.nfa.choice(false, left, right), nil
}

func startsPrimary(t tokenType) bool {
	switch t {
	case tChar, tDash, tLParen, tLBracket, tDot:
		return true
	case tCaret, tRBrace, tBadEscape:
		// not primaries, but parsePrimary reports them better than a trailing-input error
		return true
	}
	return false
}

func (p *parser) parseConcat() (int, error) {
	entry, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	// only the most recent piece still has open exits
	last := entry
	for startsPrimary(p.look.typ) {
		next, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		p.nfa.patch(last, next)
		last = next
	}
	return entry, nil
}

func (p *parser) parseUnary() (int, error) {
	frag, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.look.typ {
		case tStar:
			p.scan()
			loop := p.nfa.choice(true, frag)
			p.nfa.patch(frag, loop)
			frag = loop
		case tPlus:
			p.scan()
			loop := p.nfa.choice(true, frag)
			p.nfa.patch(frag, loop)
		case tQMark:
			p.scan()
			frag = p.nfa.choice(true, frag)
		case tLBrace:
			min, max, err := p.parseRepeat()
			if err != nil {
				return 0, err
			}
			frag = p.repeat(frag, min, max)
		default:
			return frag, nil
		}
	}
}

func (p *parser) parsePrimary() (int, error) {
	tok := p.look
	switch tok.typ {
	case tChar, tDash:
		p.scan()
		return p.nfa.terminal(tok.ch), nil
	case tLParen:
		p.scan()
		inner, err := p.parseAlternation()
		if err != nil {
			return 0, err
		}
		if p.look.typ != tRParen {
			return 0, p.expected(")")
		}
		p.scan()
		return inner, nil
	case tLBracket:
		p.scan()
		set, err := p.parseClass(tRBracket, p.alphabet, false)
		if err != nil {
			return 0, err
		}
		return p.anyOf(set), nil
	case tDot:
		if p.alphabet == nil {
			return 0, alphabetRequired("the . operator", tok.pos)
		}
		p.scan()
		return p.anyOf(p.alphabet), nil
	case tEOF:
		return 0, syntaxErrorf(tok.pos, "unexpected end of input, expected a primary")
	case tBadEscape:
		return 0, syntaxErrorf(tok.pos, "expected escaped character but end of input found")
	default:
		return 0, syntaxErrorf(tok.pos, "unsupported operator %q", tok)
	}
}

func (p *parser) expected(what string) error {
	if p.look.typ == tEOF {
		return syntaxErrorf(p.look.pos, "unexpected end of input, expected %s", what)
	}
	return syntaxErrorf(p.look.pos, "unexpected token %q, expected %s", p.look, what)
}

// anyOf builds a choice over one terminal per symbol.
func (p *parser) anyOf(set []rune) int {
	next := make([]int, len(set))
	for i, r := range set {
		next[i] = p.nfa.terminal(r)
	}
	return p.nfa.choice(false, next...)
}

/* ----------------------- character classes ----------------------- */

// parseClass reads class members up to end (] for patterns, end of input for alphabets).
// A leading ^ negates against universe; lenient accepts operator characters as literals.
func (p *parser) parseClass(end tokenType, universe []rune, lenient bool) ([]rune, error) {
	open := p.look.pos
	negate := false
	if p.look.typ == tCaret {
		negate = true
		p.scan()
	}

	set := newRuneSet()
	for p.look.typ != end {
		tok := p.look
		switch {
		case tok.typ == tEOF:
			return nil, p.expected("]")
		case tok.typ == tBadEscape:
			return nil, syntaxErrorf(tok.pos, "expected escaped character but end of input found")
		case !tok.literal() && !lenient:
			return nil, syntaxErrorf(tok.pos, "operator not allowed in character class: %q", tok)
		}
		p.scan()
		if p.look.typ != tDash {
			set.add(tok.ch)
			continue
		}
		p.scan() // '-'
		if p.look.typ == end {
			// trailing dash is literal
			set.add(tok.ch, '-')
			continue
		}
		hi := p.look
		if hi.typ == tEOF || hi.typ == tBadEscape || (!hi.literal() && !lenient) {
			return nil, syntaxErrorf(hi.pos, "incomplete range starting with %q", tok)
		}
		p.scan()
		if hi.ch < tok.ch {
			return nil, syntaxErrorf(hi.pos, "invalid range %c-%c", tok.ch, hi.ch)
		}
		if int(hi.ch-tok.ch)+1 > maxRangeSize {
			return nil, syntaxErrorf(hi.pos, "range %c-%c exceeds %d symbols", tok.ch, hi.ch, maxRangeSize)
		}
		for r := tok.ch; r <= hi.ch; r++ {
			set.add(r)
		}
	}
	if end != tEOF {
		p.scan() // ']'
	}

	if set.len() == 0 {
		return nil, syntaxErrorf(open, "empty character class is not allowed")
	}
	if !negate {
		return set.runes(), nil
	}
	if universe == nil {
		return nil, alphabetRequired("^ character class", open)
	}
	out := make([]rune, 0, len(universe))
	for _, r := range universe {
		if !set.has(r) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, syntaxErrorf(open, "negated character class excludes every symbol")
	}
	return out, nil
}

/* ----------------------- repetition ----------------------- */

// parseRepeat consumes {m}, {m,} or {m,n}. max is -1 when unbounded.
func (p *parser) parseRepeat() (int, int, error) {
	open := p.look.pos
	p.scan() // '{'
	var body strings.Builder
	for p.look.typ != tRBrace {
		switch p.look.typ {
		case tEOF:
			return 0, 0, p.expected("}")
		case tChar:
			body.WriteRune(p.look.ch)
			p.scan()
		default:
			return 0, 0, syntaxErrorf(p.look.pos, "unexpected token %q in repetition bounds", p.look)
		}
	}
	p.scan() // '}'

	m := repeatBounds.FindStringSubmatch(body.String())
	if m == nil {
		return 0, 0, syntaxErrorf(open, "malformed repetition {%s}, expected {m}, {m,} or {m,n}", body.String())
	}
	min, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, syntaxErrorf(open, "repetition count %s out of range", m[1])
	}
	max := min
	if m[2] != "" {
		max = -1
		if m[3] != "" {
			if max, err = strconv.Atoi(m[3]); err != nil {
				return 0, 0, syntaxErrorf(open, "repetition count %s out of range", m[3])
			}
			if max < min {
				return 0, 0, syntaxErrorf(open, "repetition {%d,%d} has max below min", min, max)
			}
		}
	}
	return min, max, nil
}

// repeat expands frag into min mandatory copies followed by either a starred copy (max < 0)
// or max-min optional copies. Copies are structural clones taken before any patching.
func (p *parser) repeat(frag, min, max int) int {
	optional := max - min
	if max < 0 {
		optional = 1
	}
	copies := make([]int, min+optional)
	for i := range copies {
		if i == 0 {
			copies[i] = frag
		} else {
			copies[i] = p.nfa.clone(frag)
		}
	}

	pieces := make([]int, 0, len(copies))
	pieces = append(pieces, copies[:min]...)
	if max < 0 {
		tail := copies[min]
		loop := p.nfa.choice(true, tail)
		p.nfa.patch(tail, loop)
		pieces = append(pieces, loop)
	} else {
		for _, c := range copies[min:] {
			pieces = append(pieces, p.nfa.choice(true, c))
		}
	}
	if len(pieces) == 0 {
		// {0} and {0,0} match only the empty string
		return p.nfa.choice(true)
	}
	for i := 1; i < len(pieces); i++ {
		p.nfa.patch(pieces[i-1], pieces[i])
	}
	return pieces[0]
}
