package regexlib

import (
	"unicode/utf8"
)

type tokenType int

const (
	tEOF      tokenType = iota
	tChar               // literal rune, escaped or plain
	tLParen             // (
	tRParen             // )
	tStar               // *
	tPlus               // +
	tQMark              // ?
	tUnion              // |
	tLBracket           // [
	tRBracket           // ]
	tDot                // .
	tCaret              // ^ (negation at the start of a class)
	tDash               // - (range inside a class)
	tLBrace             // {
	tRBrace             // }
	tBadEscape          // trailing backslash
)

var tokenNames = map[tokenType]string{
	tEOF:       "end of input",
	tLParen:    "(",
	tRParen:    ")",
	tStar:      "*",
	tPlus:      "+",
	tQMark:     "?",
	tUnion:     "|",
	tLBracket:  "[",
	tRBracket:  "]",
	tDot:       ".",
	tCaret:     "^",
	tDash:      "-",
	tLBrace:    "{",
	tRBrace:    "}",
	tBadEscape: `\`,
}

type token struct {
	typ tokenType
	ch  rune // the character as written; the escaped one for escapes
	pos int  // character offset in the pattern
}

func (t token) String() string {
	if t.typ == tChar {
		return string(t.ch)
	}
	return tokenNames[t.typ]
}

// literal reports whether the token can stand for its own character inside a class.
func (t token) literal() bool {
	return t.typ == tChar || t.typ == tCaret || t.typ == tDash
}

type lexer struct {
	input string
	pos   int // byte offset
	char  int // character offset
}

func newLexer(s string) *lexer { return &lexer{input: s} }

func (l *lexer) next() token {
	if l.pos >= len(l.input) {
		return token{typ: tEOF, pos: l.char}
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	start := l.char
	l.char++
	switch r {
	case '(':
		return token{typ: tLParen, ch: r, pos: start}
	case ')':
		return token{typ: tRParen, ch: r, pos: start}
	case '*':
		return token{typ: tStar, ch: r, pos: start}
	case '+':
		return token{typ: tPlus, ch: r, pos: start}
	case '?':
		return token{typ: tQMark, ch: r, pos: start}
	case '|':
		return token{typ: tUnion, ch: r, pos: start}
	case '[':
		return token{typ: tLBracket, ch: r, pos: start}
	case ']':
		return token{typ: tRBracket, ch: r, pos: start}
	case '.':
		return token{typ: tDot, ch: r, pos: start}
	case '^':
		return token{typ: tCaret, ch: r, pos: start}
	case '-':
		return token{typ: tDash, ch: r, pos: start}
	case '{':
		return token{typ: tLBrace, ch: r, pos: start}
	case '}':
		return token{typ: tRBrace, ch: r, pos: start}
	case '\\':
		if l.pos >= len(l.input) {
			return token{typ: tBadEscape, ch: r, pos: start}
		}
		r2, s2 := utf8.DecodeRuneInString(l.input[l.pos:])
		l.pos += s2
		l.char++
		return token{typ: tChar, ch: r2, pos: start + 1}
	default:
		return token{typ: tChar, ch: r, pos: start}
	}
}
