package params

import (
	"strings"

	"github.com/reusee/scpi/schemas"
)

// Tokens is an enumeration of mnemonics in long form, like "IMMediate".
// The upper case prefix is the short form.
type Tokens []string

func ShortForm(token string) string {
	var b strings.Builder
	for i := 0; i < len(token); i++ {
		if c := token[i]; c < 'a' || c > 'z' {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return strings.ToUpper(token)
	}
	return b.String()
}

func matchToken(token string, word string) bool {
	return strings.EqualFold(word, token) ||
		strings.EqualFold(word, ShortForm(token))
}

// Match reads one word from input and returns the index of the matching token.
func (t Tokens) Match(input string) (index int, rest string, ok bool) {
	n := scanWord(input)
	if n == 0 {
		return 0, input, false
	}
	word := input[:n]
	for i, token := range t {
		if matchToken(token, word) {
			return i, input[n:], true
		}
	}
	return 0, input, false
}

func (t Tokens) Format(index int) string {
	return ShortForm(t[index])
}

// Codec returns a codec of short form strings.
func (t Tokens) Codec() schemas.Codec {
	return tokensCodec{tokens: t}
}

type tokensCodec struct {
	tokens Tokens
}

func (c tokensCodec) Parse(input string) (any, string, bool) {
	i, rest, ok := c.tokens.Match(input)
	if !ok {
		return nil, input, false
	}
	return c.tokens.Format(i), rest, true
}

// Format writes strings that are not tokens as is, they do not parse back
func (c tokensCodec) Format(value any) string {
	str := value.(string)
	for i, token := range c.tokens {
		if matchToken(token, str) {
			return c.tokens.Format(i)
		}
	}
	return str
}

func (c tokensCodec) Default() any {
	if len(c.tokens) == 0 {
		return ""
	}
	return c.tokens.Format(0)
}
