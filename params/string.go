package params

import (
	"reflect"
	"strings"
)

// stringCodec handles SCPI string data: quoted by ' or ", embedded quotes doubled.
type stringCodec struct {
	typ reflect.Type
}

func (c stringCodec) Parse(input string) (any, string, bool) {
	if len(input) == 0 || (input[0] != '"' && input[0] != '\'') {
		return nil, input, false
	}
	quote := input[0]
	var b strings.Builder
	for i := 1; i < len(input); i++ {
		if input[i] != quote {
			b.WriteByte(input[i])
			continue
		}
		if i+1 < len(input) && input[i+1] == quote {
			b.WriteByte(quote)
			i++
			continue
		}
		return reflect.ValueOf(b.String()).Convert(c.typ).Interface(), input[i+1:], true
	}
	return nil, input, false
}

func (c stringCodec) Format(value any) string {
	return Quote(reflect.ValueOf(value).String())
}

func (c stringCodec) Default() any {
	return reflect.Zero(c.typ).Interface()
}

func Quote(str string) string {
	return `"` + strings.ReplaceAll(str, `"`, `""`) + `"`
}
