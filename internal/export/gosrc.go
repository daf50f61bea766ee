package export

import (
	"fmt"
	"io"

	"github.com/dave/jennifer/jen"

	"turingregex/internal/turing"
)

// WriteGo writes the program as a self-contained Go source file declaring the initial, accept
// and reject state names and a Table from state and symbol to rule.
func WriteGo(w io.Writer, p *turing.Program, pkg string) error {
	if pkg == "" {
		pkg = "machine"
	}
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by turingregex. DO NOT EDIT.")

	if p.Name != "" {
		f.Comment(p.Name)
	}
	f.Const().Defs(
		jen.Id("Initial").Op("=").Lit(p.Initial),
		jen.Id("Accept").Op("=").Lit(p.Accept),
		jen.Id("Reject").Op("=").Lit(p.Reject),
		jen.Id("Blank").Op("=").LitRune(turing.Blank),
	)

	f.Comment("Rule is the action taken on reading a symbol. Move is one of <, > and -.")
	f.Type().Id("Rule").Struct(
		jen.Id("Write").Rune(),
		jen.Id("Move").String(),
		jen.Id("Next").String(),
	)

	f.Comment("Table maps a state and the symbol under the head to its rule.")
	f.Var().Id("Table").Op("=").Map(jen.String()).Map(jen.Rune()).Id("Rule").Values(
		jen.DictFunc(func(states jen.Dict) {
			for _, s := range p.States {
				rules := jen.Dict{}
				for _, r := range s.Rules {
					rules[jen.LitRune(r.Read)] = jen.Values(jen.Dict{
						jen.Id("Write"): jen.LitRune(r.Write),
						jen.Id("Move"):  jen.Lit(r.Move.String()),
						jen.Id("Next"):  jen.Lit(r.Next),
					})
				}
				states[jen.Lit(s.Name)] = jen.Values(rules)
			}
		}),
	)

	if err := f.Render(w); err != nil {
		return fmt.Errorf("render go source: %w", err)
	}
	return nil
}
