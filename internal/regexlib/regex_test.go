package regexlib

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ------------------------------------------------------------------- helpers

func acc(t *testing.T, re *Regex, in string, want bool) {
	t.Helper()
	if got := re.MatchString(in); got != want {
		t.Fatalf("pattern %q on %q want %v got %v", re.pattern, in, want, got)
	}
}

func newRE(t *testing.T, pat, alphabet string) *Regex {
	t.Helper()
	var alpha []rune
	if alphabet != "" {
		alpha = []rune(alphabet)
	}
	re, err := Compile(pat, Options{Alphabet: alpha})
	if err != nil {
		t.Fatalf("compile %q: %v", pat, err)
	}
	return re
}

// words returns every string over sigma of length at most n.
func words(sigma []rune, n int) []string {
	out := []string{""}
	layer := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range layer {
			for _, r := range sigma {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		layer = next
	}
	return out
}

// ------------------------------------------------------------------- Parser

func TestParserPrecedence(t *testing.T) {
	re := newRE(t, "a|bc*", "")
	acc(t, re, "a", true)
	acc(t, re, "b", true)
	acc(t, re, "bccc", true)
	acc(t, re, "ab", false)
	acc(t, re, "ac", false)
}

func TestParserCharClass(t *testing.T) {
	re := newRE(t, "[a-c]+", "")
	acc(t, re, "abcabc", true)
	acc(t, re, "d", false)

	re = newRE(t, "[a-]", "")
	acc(t, re, "-", true)
	acc(t, re, "a", true)
	acc(t, re, "b", false)
}

func TestParserNegatedClass(t *testing.T) {
	re := newRE(t, "[^ab]+b", "abc")
	acc(t, re, "cb", true)
	acc(t, re, "ccb", true)
	acc(t, re, "ab", false)
	acc(t, re, "b", false)
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		pat    string
		offset int
	}{
		{"", 0},
		{"a)", 1},
		{"(a", 2},
		{"[]", 1},
		{"[z-a]", 3},
		{"[a*]", 2},
		{"a{2", 3},
		{"a{x}", 1},
		{"a{3,1}", 1},
		{"*a", 0},
		{`a\`, 1},
		{"a^", 1},
		{"a}", 1},
		{"a||b", 2},
		{"[ -\u9fff]", 3},
		{"[\u0100-\u0500]", 3},
	}
	for _, c := range cases {
		_, err := Compile(c.pat, Options{})
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("%q: want SyntaxError got %v", c.pat, err)
		}
		if se.Offset != c.offset {
			t.Fatalf("%q: want offset %d got %d (%v)", c.pat, c.offset, se.Offset, se)
		}
		if !strings.HasPrefix(se.Error(), "parsing error at index") {
			t.Fatalf("%q: unexpected message %q", c.pat, se.Error())
		}
	}
}

func TestRangeSizeLimit(t *testing.T) {
	_, err := Compile("[\u0100-\u0500]", Options{})
	var se *SyntaxError
	if !errors.As(err, &se) || !strings.Contains(se.Error(), "exceeds") {
		t.Fatalf("want range size error got %v", err)
	}

	// 0x100..0x4ff is exactly 1024 symbols
	re, err := Compile("[\u0100-\u04ff]", Options{})
	if err != nil {
		t.Fatal(err)
	}
	acc(t, re, "\u0100", true)
	acc(t, re, "\u04ff", true)
	acc(t, re, "\u0500", false)
	if re.Pattern() != "[\u0100-\u04ff]" || re.Options().Alphabet != nil {
		t.Fatalf("unexpected pattern %q or options %+v", re.Pattern(), re.Options())
	}
}

func TestAlphabetRequired(t *testing.T) {
	for _, pat := range []string{".", "a.b", "[^a]"} {
		if _, err := Compile(pat, Options{}); !errors.Is(err, ErrAlphabetRequired) {
			t.Fatalf("%q: want ErrAlphabetRequired got %v", pat, err)
		}
	}
	if _, err := Compile("a", Options{Unanchored: true}); !errors.Is(err, ErrAlphabetRequired) {
		t.Fatalf("unanchored: want ErrAlphabetRequired got %v", err)
	}
	if _, err := Compile("a", Options{Alphabet: []rune("a_")}); !errors.Is(err, ErrBlankInAlphabet) {
		t.Fatalf("want ErrBlankInAlphabet got %v", err)
	}
}

// ------------------------------------------------------------------- Repetition

func TestBoundedRepetition(t *testing.T) {
	cases := []struct {
		pat  string
		in   string
		want bool
	}{
		{"ab{3}c", "abbc", false},
		{"ab{3}c", "abbbc", true},
		{"ab{3}c", "abbbbc", false},
		{"ab{2,}c", "abc", false},
		{"ab{2,}c", "abbc", true},
		{"ab{2,}c", "abbbbbc", true},
		{"ab{2,4}c", "abc", false},
		{"ab{2,4}c", "abbbbc", true},
		{"ab{2,4}c", "abbbbbc", false},
		{"ab{0,2}c", "ac", true},
		{"ab{0,2}c", "abbc", true},
		{"ab{0,2}c", "abbbc", false},
		{"ab{0}c", "ac", true},
		{"ab{0}c", "abc", false},
		{"(a*b){2}", "bb", true},
		{"(a*b){2}", "aabab", true},
		{"(a*b){2}", "ab", false},
		{"(ab|c){1,2}", "cab", true},
		{"(ab|c){1,2}", "cabc", false},
	}
	for _, c := range cases {
		re := newRE(t, c.pat, "")
		acc(t, re, c.in, c.want)
	}
}

// ------------------------------------------------------------------- NFA ←→ DFA

// matchCases mirror the acceptance suite the machines are checked against; the Go regexp
// package serves as the oracle over every short word.
var matchCases = []struct {
	alphabet string
	pattern  string
}{
	{"", "a"},
	{"", "ab|ac"},
	{"", "abc|def"},
	{"", "a|b|c"},
	{"", "a|bc|d"},
	{"", "(a|b)(c|d)"},
	{"", "aa*b"},
	{"", "aa+b"},
	{"", "aa?b"},
	{"", "[abc]+"},
	{"abc", "[^ab]+b"},
	{"a^", `\^`},
	{"a^", `[\^]`},
	{"ab^", "[a^]"},
	{"ab^", `[^\^a]+\^`},
	{"", "[a-c]"},
	{"", `[a\-c]`},
	{"", `\*|\\`},
	{"abc", "a.*b"},
	{"", "ab{3}c"},
	{"", "ab{2,}c"},
	{"", "ab{2,4}c"},
	{"", "ab{0,2}c"},
	{"", "(a|b)*abb"},
	{"", "((a|b)*c)+"},
}

func TestDFAAgainstStdlib(t *testing.T) {
	for _, c := range matchCases {
		re := newRE(t, c.pattern, c.alphabet)
		sigma := []rune(c.alphabet)
		if c.alphabet == "" {
			sigma = append(re.DFA().Symbols(), 'z')
		}
		oracle := regexp.MustCompile(`^(?:` + c.pattern + `)$`)
		n := 5
		if len(sigma) > 4 {
			n = 4
		}
		for _, w := range words(sigma, n) {
			if got, want := re.MatchString(w), oracle.MatchString(w); got != want {
				t.Fatalf("pattern %q on %q want %v got %v", c.pattern, w, want, got)
			}
		}
	}
}

func TestRawAndMinimalAgree(t *testing.T) {
	for _, c := range matchCases {
		re := newRE(t, c.pattern, c.alphabet)
		raw, min := re.RawDFA(), re.DFA()
		if len(min.States) > len(raw.States) {
			t.Fatalf("%q: minimized has %d states, raw %d", c.pattern, len(min.States), len(raw.States))
		}
		for _, w := range words(raw.Alpha, 4) {
			if run(raw, w) != run(min, w) {
				t.Fatalf("%q: raw and minimized disagree on %q", c.pattern, w)
			}
		}
	}
}

func run(d *DFA, w string) bool {
	state := 0
	for _, r := range w {
		next, ok := d.Step(state, r)
		if !ok {
			return false
		}
		state = next
	}
	return d.States[state].Goal
}

func TestUnanchoredAndStopAtGoal(t *testing.T) {
	abc := []rune("abc")
	re := MustCompile("ab", Options{Alphabet: abc, Unanchored: true})
	acc(t, re, "ccab", true)
	acc(t, re, "abc", false)

	re = MustCompile("ab", Options{Alphabet: abc, Unanchored: true, StopAtGoal: true})
	if got := re.DFA().EndSymbols(); !cmp.Equal(got, []rune("b")) {
		t.Fatalf("end symbols want [b] got %q", string(got))
	}
	for _, s := range re.DFA().States {
		if s.Goal && len(s.Next) != 0 {
			t.Fatalf("goal state %d keeps transitions %v", s.ID, s.Next)
		}
	}
	if re.RawDFA().States[0].Goal {
		t.Fatal("initial state must not be a goal")
	}
}

// ------------------------------------------------------------------- Minimize

func TestMinimizeCount(t *testing.T) {
	cases := []struct {
		pat  string
		want int
	}{
		{"a|bc|d", 3},
		{"ab{2,4}c", 7},
		{"a|ab", 3},
		{"(a|b)*abb", 4},
	}
	for _, c := range cases {
		re := newRE(t, c.pat, "")
		if got := len(re.DFA().States); got != c.want {
			t.Fatalf("%q: want %d states got %d\n%s", c.pat, c.want, got, re.DFA())
		}
		if !re.DFA().Minimal {
			t.Fatalf("%q: result not flagged minimal", c.pat)
		}
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	opt := cmpopts.IgnoreFields(DFAState{}, "Members", "Key")
	for _, c := range matchCases {
		once := newRE(t, c.pattern, c.alphabet).DFA()
		twice := Minimize(once)
		if diff := cmp.Diff(once, twice, opt); diff != "" {
			t.Fatalf("%q: second minimization changed the DFA (-once +twice):\n%s", c.pattern, diff)
		}
	}
}

func TestMinimizeKeepsInitialState(t *testing.T) {
	re := newRE(t, "(a|b)*abb", "")
	if members := re.DFA().States[0].Members; len(members) == 0 || members[0] != 0 {
		t.Fatalf("state 0 must hold the raw initial state, got members %v", members)
	}
}

// ------------------------------------------------------------------- Find

func TestFindStringIndexLeftmostLongest(t *testing.T) {
	cases := []struct {
		pat, in string
	}{
		{"(a+b)+", "cacabaaabaacaab"},
		{"(a+b)+", "aabaabaaaaaa"},
		{"(a+b)+", "cc"},
		{"ca|(a+b)+", "abaaaaaaaaaaa"},
		{"(a|b)*abb", "aabacaaaabbbbbabbcaabb"},
		{"a|b", "cb"},
		{"ab{2,4}c", "abbbbbcabbc"},
	}
	for _, c := range cases {
		re := newRE(t, c.pat, "")
		want := regexp.MustCompilePOSIX(c.pat).FindStringIndex(c.in)
		if got := re.FindStringIndex(c.in); !cmp.Equal(got, want) {
			t.Fatalf("%q on %q want %v got %v", c.pat, c.in, want, got)
		}
	}
}

// ------------------------------------------------------------------- Alphabet

func TestExpandAlphabet(t *testing.T) {
	cases := []struct {
		expr, want string
	}{
		{"abc", "abc"},
		{"a-c", "abc"},
		{"a-cb", "abc"},
		{`\-ab`, "-ab"},
		{"ab-", "ab-"},
		{"*+()", "*+()"},
		{"a-c0-2", "abc012"},
		{"^", "^"},
		{`\^a`, "^a"},
	}
	for _, c := range cases {
		got, err := ExpandAlphabet(c.expr)
		if err != nil {
			t.Fatalf("%q: %v", c.expr, err)
		}
		if string(got) != c.want {
			t.Fatalf("%q: want %q got %q", c.expr, c.want, string(got))
		}
	}

	neg, err := ExpandAlphabet("^a")
	if err != nil {
		t.Fatal(err)
	}
	if len(neg) != 93 || strings.ContainsRune(string(neg), 'a') || strings.ContainsRune(string(neg), Blank) {
		t.Fatalf("negated alphabet has %d symbols: %q", len(neg), string(neg))
	}

	if _, err := ExpandAlphabet("a_b"); !errors.Is(err, ErrBlankInAlphabet) {
		t.Fatalf("want ErrBlankInAlphabet got %v", err)
	}
	if _, err := ExpandAlphabet("c-a"); err == nil {
		t.Fatal("invalid range accepted")
	}
	if got, _ := ExpandAlphabet(""); got != nil {
		t.Fatalf("empty expression want nil got %q", string(got))
	}
}

func TestFormatAlphabetRoundTrip(t *testing.T) {
	for _, s := range []string{"abc", `^-\a`, "a^b-c", "*"} {
		got, err := ExpandAlphabet(FormatAlphabet([]rune(s)))
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if string(got) != s {
			t.Fatalf("round trip of %q gave %q", s, string(got))
		}
	}
}

// ------------------------------------------------------------------- Dumps

func TestDumps(t *testing.T) {
	re := newRE(t, "a|bc|d", "")
	if s := re.NFA().String(); !strings.HasPrefix(s, "NFA:") || !strings.Contains(s, "⊙") {
		t.Fatalf("unexpected NFA dump:\n%s", s)
	}
	if s := re.DFA().String(); !strings.HasPrefix(s, "DFA: (3 states)") {
		t.Fatalf("unexpected DFA dump:\n%s", s)
	}
}

func TestExportDOT(t *testing.T) {
	re := newRE(t, "[a-e]x", "abcdex")
	var b strings.Builder
	if err := ExportDOT(&b, re.DFA()); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{
		"digraph G {",
		`q0 -> q1 [label="a-e"];`,
		`q1 -> q2 [label="x"];`,
		"q2 [shape=doublecircle];",
		"_start -> q0;",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("DOT output lacks %q:\n%s", want, out)
		}
	}

	b.Reset()
	if err := ExportDOT(&b, re.NFA()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "doublecircle") {
		t.Fatalf("NFA DOT lacks accepting state:\n%s", b.String())
	}

	if err := ExportDOT(&b, 42); err == nil {
		t.Fatal("want error for unsupported value")
	}
}

func TestCompactLabel(t *testing.T) {
	order := symbolOrder([]rune("abcdxyz"))
	if got := compactLabel([]rune("zdbac"), order); got != "a-d,z" {
		t.Fatalf("want a-d,z got %s", got)
	}
	if got := compactLabel([]rune("ab"), order); got != "a,b" {
		t.Fatalf("want a,b got %s", got)
	}
}
