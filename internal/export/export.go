// Package export serializes synthesized programs and renders automata.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"turingregex/internal/turing"
)

var ErrUnknownFormat = errors.New("unknown format")

// Formats lists the program formats accepted by Write.
var Formats = []string{"text", "yaml", "go", "dot"}

// Write serializes the result of a compilation. The dot format describes the minimized DFA the
// program was built from rather than the program itself.
func Write(w io.Writer, format string, res *turing.Result) error {
	switch strings.ToLower(format) {
	case "", "text":
		return WriteText(w, res.Program)
	case "yaml", "yml":
		return WriteYAML(w, res.Program)
	case "go":
		return WriteGo(w, res.Program, "machine")
	case "dot":
		return WriteDOT(w, res.DFA)
	}
	return fmt.Errorf("%w %q, expected one of %s", ErrUnknownFormat, format, strings.Join(Formats, ", "))
}
