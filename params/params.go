package params

import (
	"fmt"
	"reflect"

	"github.com/reusee/scpi/schemas"
)

// Parameter is implemented by value types with their own SCPI form.
// The pointer type must implement Parser.
type Parameter interface {
	FormatSCPI() string
}

type Parser interface {
	ParseSCPI(input string) (rest string, ok bool)
}

var (
	parameterType = reflect.TypeFor[Parameter]()
	parserType    = reflect.TypeFor[Parser]()
)

var _ schemas.Resolver = For

func For(t reflect.Type) (schemas.Codec, error) {
	if t.Implements(parameterType) && reflect.PointerTo(t).Implements(parserType) {
		return parameterCodec{typ: t}, nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intCodec{typ: t}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintCodec{typ: t}, nil
	case reflect.Float32, reflect.Float64:
		return floatCodec{typ: t}, nil
	case reflect.Bool:
		return boolCodec{typ: t}, nil
	case reflect.String:
		return stringCodec{typ: t}, nil
	}

	return nil, fmt.Errorf("%w for %v", schemas.ErrNoCodec, t)
}

type parameterCodec struct {
	typ reflect.Type
}

func (p parameterCodec) Parse(input string) (any, string, bool) {
	ptr := reflect.New(p.typ)
	rest, ok := ptr.Interface().(Parser).ParseSCPI(input)
	if !ok {
		return nil, input, false
	}
	return ptr.Elem().Interface(), rest, true
}

func (p parameterCodec) Format(value any) string {
	return value.(Parameter).FormatSCPI()
}

func (p parameterCodec) Default() any {
	return reflect.Zero(p.typ).Interface()
}

// ParseAll parses input with codec and requires all of it to be consumed.
func ParseAll(codec schemas.Codec, input string) (any, bool) {
	value, rest, ok := codec.Parse(input)
	if !ok || rest != "" {
		return nil, false
	}
	return value, true
}
