package patterns

import "strings"

type Token struct {
	Kind TokenKind
	// Text is the literal for TokenRequired and TokenOptional
	Text string
	// Name is the placeholder name of a <name> parameter, informational only
	Name string
	Pos  int
}

type TokenKind uint8

const (
	TokenInvalid TokenKind = iota
	TokenRequired
	TokenOptional
	TokenSpace
	TokenParameter
)

func (k TokenKind) String() string {
	switch k {
	case TokenRequired:
		return "required"
	case TokenOptional:
		return "optional"
	case TokenSpace:
		return "space"
	case TokenParameter:
		return "parameter"
	}
	return "invalid"
}

func (t Token) String() string {
	switch t.Kind {
	case TokenRequired:
		return t.Text
	case TokenOptional:
		return "[" + t.Text + "]"
	case TokenSpace:
		return " "
	case TokenParameter:
		if t.Name != "" {
			return "<" + t.Name + ">"
		}
		return "{}"
	}
	return ""
}

// String renders tokens back to canonical pattern text.
func String(tokens []Token) string {
	var b strings.Builder
	for _, token := range tokens {
		b.WriteString(token.String())
	}
	return b.String()
}

func Parameters(tokens []Token) (n int) {
	for _, token := range tokens {
		if token.Kind == TokenParameter {
			n++
		}
	}
	return
}
