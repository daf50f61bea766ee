package regexlib

import (
	"errors"
	"fmt"
)

var (
	// ErrAlphabetRequired is returned when a construct or mode needs the explicit alphabet
	// (the . operator, class negation, unanchored compilation) and none was given.
	ErrAlphabetRequired = errors.New("an explicit alphabet is required")
	// ErrBlankInAlphabet is returned when the reserved blank symbol appears in an alphabet.
	ErrBlankInAlphabet = errors.New("the blank symbol is reserved and cannot be part of the alphabet")
)

// SyntaxError reports a malformed pattern together with the character offset it was found at.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parsing error at index %d: %s", e.Offset, e.Msg)
}

func syntaxErrorf(offset int, format string, args ...any) error {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
