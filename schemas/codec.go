package schemas

import "reflect"

// Codec is a value type's own text capability. Parse consumes a prefix of input.
type Codec interface {
	Parse(input string) (value any, rest string, ok bool)
	Format(value any) string
	Default() any
}

type Resolver func(t reflect.Type) (Codec, error)
