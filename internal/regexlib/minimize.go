package regexlib

// prune drops states unreachable from the initial state. Survivors keep their relative
// order, so the initial state stays 0.
func prune(d *DFA) *DFA {
	if d == nil || len(d.States) == 0 {
		return d
	}
	reach := make([]bool, len(d.States))
	reach[0] = true
	stack := []int{0}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range d.States[s].Next {
			if !reach[t] {
				reach[t] = true
				stack = append(stack, t)
			}
		}
	}

	remap := make([]int, len(d.States))
	var states []*DFAState
	for i, s := range d.States {
		if !reach[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(states)
		states = append(states, &DFAState{ID: len(states), Goal: s.Goal, Key: s.Key, Members: s.Members})
	}
	for i, s := range d.States {
		if remap[i] < 0 {
			continue
		}
		next := make(map[rune]int, len(s.Next))
		for r, t := range s.Next {
			next[r] = remap[t]
		}
		states[remap[i]].Next = next
	}
	return &DFA{States: states, Alpha: d.Alpha, Minimal: d.Minimal}
}

// Minimize prunes unreachable states and merges equivalent ones by Moore partition
// refinement. A state lacking a transition on a symbol is distinguished from one that has it.
// Blocks are numbered by their lowest member, so block 0 holds the initial state.
func Minimize(d *DFA) *DFA {
	d = prune(d)
	if d == nil || len(d.States) == 0 {
		return d // empty automaton, nothing to merge
	}

	// --- 1. initial partition: goal / non-goal --------------------------------
	block := make([]int, len(d.States))
	count := 0
	first := map[bool]int{}
	for i, s := range d.States {
		b, ok := first[s.Goal]
		if !ok {
			b = count
			first[s.Goal] = b
			count++
		}
		block[i] = b
	}

	// --- 2. refine until no block splits ----------------------------------------
	symbols := d.Symbols()
	for {
		index := newVecIndex()
		next := make([]int, len(d.States))
		nextCount := 0
		for i, s := range d.States {
			sig := make([]int, 0, len(symbols)+1)
			sig = append(sig, block[i])
			for _, r := range symbols {
				if t, ok := s.Next[r]; ok {
					sig = append(sig, block[t]+1)
				} else {
					sig = append(sig, 0)
				}
			}
			b, ok := index.lookup(sig)
			if !ok {
				b = nextCount
				nextCount++
				index.insert(sig, b)
			}
			next[i] = b
		}
		block = next
		if nextCount == count {
			break
		}
		count = nextCount
	}

	// --- 3. one state per block, transitions from any member ---------------------
	states := make([]*DFAState, count)
	for i, s := range d.States {
		b := block[i]
		if states[b] == nil {
			states[b] = &DFAState{ID: b, Goal: s.Goal, Next: make(map[rune]int, len(s.Next))}
			for r, t := range s.Next {
				states[b].Next[r] = block[t]
			}
		}
		states[b].Members = append(states[b].Members, i)
	}
	return &DFA{States: states, Alpha: d.Alpha, Minimal: true}
}
