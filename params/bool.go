package params

import (
	"reflect"

	"github.com/reusee/scpi/vars"
)

type boolCodec struct {
	typ reflect.Type
}

func (c boolCodec) Parse(input string) (any, string, bool) {
	n := scanWord(input)
	if n == 0 {
		return nil, input, false
	}
	v, ok := vars.ParseBool(input[:n])
	if !ok {
		return nil, input, false
	}
	return reflect.ValueOf(v).Convert(c.typ).Interface(), input[n:], true
}

func (c boolCodec) Format(value any) string {
	if reflect.ValueOf(value).Bool() {
		return "ON"
	}
	return "OFF"
}

func (c boolCodec) Default() any {
	return reflect.Zero(c.typ).Interface()
}
