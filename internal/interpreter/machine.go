package interpreter

import (
	"errors"
	"fmt"
	"io"

	"turingregex/internal/log"
	"turingregex/internal/turing"
)

// ErrStepLimit is returned when a run does not halt within its step ceiling.
var ErrStepLimit = errors.New("step limit exceeded")

// DefaultMaxSteps is the step ceiling used when none is given.
const DefaultMaxSteps = 10000

// Result describes how a run ended. Head is relative to the first input cell and Tape is the
// tape without surrounding blanks.
type Result struct {
	Accepted bool   `json:"accepted"`
	State    string `json:"state"`
	Steps    int    `json:"steps"`
	Tape     string `json:"tape"`
	Head     int    `json:"head"`
}

func (r Result) String() string {
	return fmt.Sprintf("Result(accepted=%v, state=%s, steps=%d, tape=%s, head=%d)",
		r.Accepted, r.State, r.Steps, r.Tape, r.Head)
}

// Machine runs a program on inputs. Trace, when set, receives a line per step.
type Machine struct {
	prog  *turing.Program
	Trace io.Writer
}

func New(p *turing.Program) *Machine {
	return &Machine{prog: p}
}

// Run executes the program on input. A step is counted before every lookup; reaching the
// accept state ends the run before the next count. A missing state or rule rejects.
func (m *Machine) Run(input string, maxSteps int) (Result, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	ctx := newContext(m.prog, input)
	for {
		if ctx.State == m.prog.Accept {
			return m.halt(ctx, true), nil
		}
		ctx.Steps++
		if ctx.Steps > maxSteps {
			return m.halt(ctx, false), fmt.Errorf("%w: %d steps without halting in %s", ErrStepLimit, maxSteps, ctx.State)
		}
		if !ctx.Env.Has(ctx.State) {
			return m.halt(ctx, false), nil
		}
		rule, ok := ctx.Env.Get(ctx.State, ctx.Tape.Read(ctx.Head.Pos))
		if !ok {
			return m.halt(ctx, false), nil
		}
		if m.Trace != nil {
			ctx.Display(m.Trace)
		}
		ctx.Tape.Write(ctx.Head.Pos, rule.Write)
		ctx.Head.Move(rule.Move)
		ctx.State = rule.Next
	}
}

func (m *Machine) halt(ctx *Context, accepted bool) Result {
	res := Result{
		Accepted: accepted,
		State:    ctx.State,
		Steps:    ctx.Steps,
		Tape:     ctx.Tape.String(),
		Head:     ctx.Head.Pos,
	}
	log.Debug().Bool("accepted", accepted).Str("state", res.State).Int("steps", res.Steps).Msg("machine halted")
	return res
}

// Run is a shorthand for New(p).Run(input, maxSteps).
func Run(p *turing.Program, input string, maxSteps int) (Result, error) {
	return New(p).Run(input, maxSteps)
}
