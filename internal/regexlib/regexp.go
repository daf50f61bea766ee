package regexlib

import (
	"fmt"

	"turingregex/internal/log"
)

/* ----------- compilation ----------- */

// Options tune how a pattern is compiled.
type Options struct {
	// Alphabet is the explicit set of input symbols, nil when none was given.
	Alphabet []rune
	// Unanchored lets the match start anywhere by prefixing the pattern with
	// an alphabet loop. Requires Alphabet.
	Unanchored bool
	// StopAtGoal removes the transitions leaving goal states before minimization.
	StopAtGoal bool
}

// Regex is a compiled pattern together with every intermediate automaton.
type Regex struct {
	pattern string
	opts    Options
	nfa     *NFA
	rawDFA  *DFA
	dfa     *DFA
}

// Compile parses pattern into a Thompson NFA, determinizes it and minimizes the result.
func Compile(pattern string, opts Options) (*Regex, error) {
	if opts.Alphabet != nil {
		if err := checkAlphabet(opts.Alphabet); err != nil {
			return nil, err
		}
	}
	if opts.Unanchored && opts.Alphabet == nil {
		return nil, fmt.Errorf("%w for unanchored matching", ErrAlphabetRequired)
	}

	/* 1) parsing straight into NFA fragments ------------------------------ */
	n := &NFA{}
	entry, err := newParser(pattern, n, opts.Alphabet).parse()
	if err != nil {
		return nil, err
	}
	if opts.Unanchored {
		entry = anyPrefix(n, opts.Alphabet, entry)
	}
	n.Entry = entry
	log.Debug().Str("pattern", pattern).Int("nfa_states", n.Len()).Msg("nfa built")

	/* 2) NFA → DFA --------------------------------------------------------- */
	raw := determinize(n, entry)
	raw.Alpha = alphabetOf(opts.Alphabet, raw)
	log.Debug().Int("dfa_states", len(raw.States)).Msg("subset construction done")

	/* 3) minimization ------------------------------------------------------ */
	cut := raw
	if opts.StopAtGoal {
		cut = copyDFA(raw)
		cut.stopAtGoals()
	}
	min := Minimize(cut)
	log.Debug().Int("min_states", len(min.States)).Bool("stop_at_goal", opts.StopAtGoal).Msg("dfa minimized")

	return &Regex{pattern: pattern, opts: opts, nfa: n, rawDFA: raw, dfa: min}, nil
}

func MustCompile(pattern string, opts Options) *Regex {
	r, err := Compile(pattern, opts)
	if err != nil {
		panic(err)
	}
	return r
}

// anyPrefix builds alphabet* followed by entry and returns its entry.
func anyPrefix(n *NFA, alphabet []rune, entry int) int {
	next := make([]int, len(alphabet))
	for i, r := range alphabet {
		next[i] = n.terminal(r)
	}
	sym := n.choice(false, next...)
	loop := n.choice(true, sym)
	n.patch(sym, loop)
	n.patch(loop, entry)
	return loop
}

func alphabetOf(explicit []rune, d *DFA) []rune {
	if explicit != nil {
		return append([]rune(nil), explicit...)
	}
	return d.Symbols()
}

func copyDFA(d *DFA) *DFA {
	states := make([]*DFAState, len(d.States))
	for i, s := range d.States {
		next := make(map[rune]int, len(s.Next))
		for r, t := range s.Next {
			next[r] = t
		}
		states[i] = &DFAState{ID: s.ID, Goal: s.Goal, Next: next, Key: s.Key, Members: s.Members}
	}
	return &DFA{States: states, Alpha: d.Alpha, Minimal: d.Minimal}
}

/* ----------- matching ------------------------------------------------- */

// MatchString runs the minimized DFA over the whole of s.
func (r *Regex) MatchString(s string) bool {
	state := 0
	for _, c := range s {
		next, ok := r.dfa.Step(state, c)
		if !ok {
			return false
		}
		state = next
	}
	return r.dfa.States[state].Goal
}

// FindStringIndex returns the leftmost-longest match of the pattern in s as a byte range,
// or nil. The empty match is never reported.
func (r *Regex) FindStringIndex(s string) []int {
	for start := range s {
		end := -1
		state := 0
		for i, c := range s[start:] {
			next, ok := r.dfa.Step(state, c)
			if !ok {
				break
			}
			state = next
			if r.dfa.States[state].Goal {
				end = start + i + len(string(c))
			}
		}
		if end >= 0 {
			return []int{start, end}
		}
	}
	return nil
}

/* ----------- accessors ------------------------------------------------ */

func (r *Regex) Pattern() string  { return r.pattern }
func (r *Regex) Options() Options { return r.opts }
func (r *Regex) DFA() *DFA        { return r.dfa }
func (r *Regex) RawDFA() *DFA     { return r.rawDFA }
func (r *Regex) NFA() *NFA        { return r.nfa }
