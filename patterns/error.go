package patterns

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedPattern = errors.New("malformed pattern")

type Error struct {
	Pattern string
	Pos     int
	// Text is the offending substring
	Text   string
	Reason string
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", ErrMalformedPattern.Error(), e.Reason))
	if e.Text != "" {
		sb.WriteString(fmt.Sprintf(" %q", e.Text))
	}
	sb.WriteString(fmt.Sprintf(" at column %d\n", e.Pos+1))
	sb.WriteString(e.Pattern)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", e.Pos))
	sb.WriteString("^")
	return sb.String()
}

func (e *Error) Unwrap() error {
	return ErrMalformedPattern
}
