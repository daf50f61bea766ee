package turing

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects what the synthesized program decides about its input.
type Mode string

const (
	// Match accepts when the whole input matches.
	Match Mode = "match"
	// Contains accepts when some substring of the input matches.
	Contains Mode = "contains"
	// Find leaves the leftmost-longest match on the tape.
	Find Mode = "find"
)

var (
	ErrUnknownMode = errors.New("unknown mode")
	// ErrEmptyMatch is returned for find on a pattern that accepts the empty string.
	ErrEmptyMatch = errors.New("find mode does not support patterns matching the empty string")
)

var Modes = []Mode{Match, Contains, Find}

// ParseMode maps a case-insensitive name to a Mode. The empty string selects Match.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return Match, nil
	}
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q, expected one of match, contains, find", ErrUnknownMode, s)
}
