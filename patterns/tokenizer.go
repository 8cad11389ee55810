package patterns

import (
	"strings"
)

const reserved = " []{}<>"

type Tokenizer struct {
	pattern string
	pos     int
	tokens  []Token
	err     error
	done    bool
}

func NewTokenizer(pattern string) *Tokenizer {
	return &Tokenizer{
		pattern: pattern,
	}
}

// Tokenize parses a command pattern like "MEAS:VOLT[:DC]? <channel>".
func Tokenize(pattern string) ([]Token, error) {
	return NewTokenizer(pattern).Tokens()
}

// Tokens tokenizes once, later calls return the same result
func (t *Tokenizer) Tokens() ([]Token, error) {
	if !t.done {
		t.tokens, t.err = t.tokenize()
		t.done = true
	}
	return t.tokens, t.err
}

func (t *Tokenizer) tokenize() ([]Token, error) {
	if t.pattern == "" {
		return nil, t.newError(0, "", "empty pattern")
	}
	for i := 0; i < len(t.pattern); i++ {
		if c := t.pattern[i]; c < 0x20 || c >= 0x7f {
			return nil, t.newError(i, t.pattern[i:i+1], "invalid character")
		}
	}

	var tokens []Token
	for t.pos < len(t.pattern) {
		token, err := t.parseNext()
		if err != nil {
			return nil, err
		}
		if token.Kind == TokenParameter &&
			len(tokens) > 0 &&
			tokens[len(tokens)-1].Kind == TokenParameter {
			return nil, t.newError(token.Pos, t.pattern[tokens[len(tokens)-1].Pos:t.pos], "adjacent placeholders")
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

func (t *Tokenizer) parseNext() (Token, error) {
	start := t.pos
	switch c := t.pattern[t.pos]; c {

	case ' ':
		return t.parseSpace()

	case '[':
		return t.parseOptional()

	case '{':
		end := strings.IndexByte(t.pattern[start:], '}')
		if end < 0 {
			return Token{}, t.newError(start, "{", "unmatched")
		}
		if end != 1 {
			return Token{}, t.newError(start, t.pattern[start:start+end+1], "unexpected text in placeholder")
		}
		t.pos += 2
		return Token{
			Kind: TokenParameter,
			Pos:  start,
		}, nil

	case '<':
		return t.parseNamedParameter()

	case ']', '}', '>':
		return Token{}, t.newError(start, string(c), "unmatched")

	}

	return t.parseRequired()
}

func (t *Tokenizer) parseSpace() (Token, error) {
	start := t.pos
	for t.pos < len(t.pattern) && t.pattern[t.pos] == ' ' {
		t.pos++
	}
	if start == 0 {
		return Token{}, t.newError(start, t.pattern[start:t.pos], "leading space")
	}
	if t.pos == len(t.pattern) {
		return Token{}, t.newError(start, t.pattern[start:t.pos], "trailing space")
	}
	return Token{
		Kind: TokenSpace,
		Pos:  start,
	}, nil
}

func (t *Tokenizer) parseRequired() (Token, error) {
	start := t.pos
	for t.pos < len(t.pattern) && strings.IndexByte(reserved, t.pattern[t.pos]) < 0 {
		t.pos++
	}
	return Token{
		Kind: TokenRequired,
		Text: t.pattern[start:t.pos],
		Pos:  start,
	}, nil
}

func (t *Tokenizer) parseOptional() (Token, error) {
	start := t.pos
	i := start + 1
	for ; i < len(t.pattern); i++ {
		switch c := t.pattern[i]; c {
		case ']':
			if i == start+1 {
				return Token{}, t.newError(start, "[]", "empty optional span")
			}
			t.pos = i + 1
			return Token{
				Kind: TokenOptional,
				Text: t.pattern[start+1 : i],
				Pos:  start,
			}, nil
		case '[':
			return Token{}, t.newError(i, "[", "nested optional span")
		case ' ':
			return Token{}, t.newError(i, t.pattern[start:i+1], "space in optional span")
		case '{', '<':
			return Token{}, t.newError(i, string(c), "placeholder in optional span")
		case '}', '>':
			return Token{}, t.newError(i, string(c), "unmatched")
		}
	}
	return Token{}, t.newError(start, "[", "unmatched")
}

func (t *Tokenizer) parseNamedParameter() (Token, error) {
	start := t.pos
	end := strings.IndexByte(t.pattern[start:], '>')
	if end < 0 {
		return Token{}, t.newError(start, "<", "unmatched")
	}
	name := t.pattern[start+1 : start+end]
	if name == "" {
		return Token{}, t.newError(start, "<>", "empty placeholder name")
	}
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return Token{}, t.newError(start+1+i, t.pattern[start:start+end+1], "invalid placeholder name")
		}
	}
	t.pos = start + end + 1
	return Token{
		Kind: TokenParameter,
		Name: name,
		Pos:  start,
	}, nil
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-'
}

func (t *Tokenizer) newError(pos int, text string, reason string) error {
	return &Error{
		Pattern: t.pattern,
		Pos:     pos,
		Text:    text,
		Reason:  reason,
	}
}
