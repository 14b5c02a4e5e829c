package command

import (
	"fmt"
	"strings"
)

// ErrEmptyInput indicates a line with no tokens. It is an InvalidArguments
// failure at the dispatch boundary.
var ErrEmptyInput = fmt.Errorf("%w: empty input", ErrInvalidArguments)

// Input is a parsed command line.
type Input struct {
	Command Name
	Args    []string
}

// Parse splits line on whitespace. The first token, lowercased, is the
// command; the remaining tokens are its arguments.
func Parse(line string) (Input, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Input{}, ErrEmptyInput
	}
	return Input{
		Command: Name(strings.ToLower(fields[0])),
		Args:    fields[1:],
	}, nil
}
