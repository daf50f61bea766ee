package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"turingregex/internal/turing"
)

// WriteYAML writes the program as a YAML transition table:
//
//	blank: '_'
//	start state: regex0
//	table:
//	  regex0:
//	    'a': {R: regex1}
//	    ? ['b', 'c']
//	    : R
//
// Reads sharing an action are grouped under one flow sequence key. An action that keeps the
// symbol and the state is the bare move; otherwise a flow mapping with an optional write and
// the move pointing at the next state. Halting states are listed with no rules.
func WriteYAML(w io.Writer, p *turing.Program) error {
	table := mapping(0)
	for _, s := range p.States {
		rules := mapping(0)
		for _, g := range groupRules(s) {
			key := symbolNode(g.reads[0])
			if len(g.reads) > 1 {
				key = &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
				for _, r := range g.reads {
					key.Content = append(key.Content, symbolNode(r))
				}
			}
			rules.Content = append(rules.Content, key, actionNode(s.Name, g.rule, g.keep))
		}
		name := str(s.Name)
		if s.Comment != "" {
			name.HeadComment = s.Comment
		}
		table.Content = append(table.Content, name, rules)
	}
	for _, halt := range []string{p.Accept, p.Reject} {
		if halt != "" {
			table.Content = append(table.Content, str(halt), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"})
		}
	}

	root := mapping(0)
	root.Content = append(root.Content,
		str("blank"), symbolNode(turing.Blank),
		str("start state"), str(p.Initial),
		str("table"), table,
	)
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	if p.Name != "" {
		doc.HeadComment = p.Name
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

type ruleGroup struct {
	reads []rune
	rule  turing.Rule
	keep  bool // the rule writes back what it reads
}

// groupRules merges rules with the same effect, in order of first appearance.
func groupRules(s *turing.State) []*ruleGroup {
	type effect struct {
		keep  bool
		write rune
		move  turing.Move
		next  string
	}
	var out []*ruleGroup
	index := map[effect]*ruleGroup{}
	for _, r := range s.Rules {
		e := effect{keep: r.Write == r.Read, move: r.Move, next: r.Next}
		if !e.keep {
			e.write = r.Write
		}
		if g, ok := index[e]; ok {
			g.reads = append(g.reads, r.Read)
			continue
		}
		g := &ruleGroup{reads: []rune{r.Read}, rule: r, keep: e.keep}
		index[e] = g
		out = append(out, g)
	}
	return out
}

func moveKey(m turing.Move) string {
	switch m {
	case turing.Left:
		return "L"
	case turing.Right:
		return "R"
	}
	return "S"
}

func actionNode(state string, r turing.Rule, keep bool) *yaml.Node {
	if keep && r.Next == state {
		return str(moveKey(r.Move))
	}
	action := mapping(yaml.FlowStyle)
	if !keep {
		action.Content = append(action.Content, str("write"), symbolNode(r.Write))
	}
	action.Content = append(action.Content, str(moveKey(r.Move)), str(r.Next))
	return action
}

// mapping builds a mapping node; style 0 is block style.
func mapping(style yaml.Style) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Style: style}
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func symbolNode(r rune) *yaml.Node {
	n := str(string(r))
	n.Style = yaml.SingleQuotedStyle
	return n
}
