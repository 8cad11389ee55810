package commands

import (
	"fmt"

	"github.com/reusee/scpi/decoders"
	"github.com/reusee/scpi/encoders"
	"github.com/reusee/scpi/patterns"
)

type EnumCase[T comparable] struct {
	Value   T
	Options []Options
}

func EnumValue[T comparable](value T, opts ...Options) EnumCase[T] {
	return EnumCase[T]{
		Value:   value,
		Options: opts,
	}
}

type enumCase[T comparable] struct {
	value   T
	decoder *decoders.Decoder
	encoder *encoders.Encoder
}

// Enum maps field-less values to parameterless commands.
// Use Variants for cases that carry fields.
type Enum[T comparable] struct {
	cases   []enumCase[T]
	byValue map[T]*encoders.Encoder
}

func NewEnum[T comparable](base Options, cases ...EnumCase[T]) (*Enum[T], error) {
	ret := &Enum[T]{
		byValue: make(map[T]*encoders.Encoder),
	}
	for _, c := range cases {
		if _, ok := ret.byValue[c.Value]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateVariant, c.Value)
		}
		options := base.Apply(c.Options...)
		if options.Command == "" {
			return nil, fmt.Errorf("%w for %T %v", ErrMissingCommand, c.Value, c.Value)
		}
		tokens, err := patterns.Tokenize(options.Command)
		if err != nil {
			return nil, fmt.Errorf("%T %v: %w", c.Value, c.Value, err)
		}
		decoder, err := decoders.Compile(tokens, nil)
		if err != nil {
			return nil, fmt.Errorf("%T %v: %w", c.Value, c.Value, err)
		}
		encoder, err := encoders.Compile(tokens, nil)
		if err != nil {
			return nil, fmt.Errorf("%T %v: %w", c.Value, c.Value, err)
		}
		ret.cases = append(ret.cases, enumCase[T]{
			value:   c.Value,
			decoder: decoder,
			encoder: encoder,
		})
		ret.byValue[c.Value] = encoder
	}
	return ret, nil
}

func MustEnum[T comparable](base Options, cases ...EnumCase[T]) *Enum[T] {
	ret, err := NewEnum(base, cases...)
	if err != nil {
		panic(err)
	}
	return ret
}

func (e *Enum[T]) Decode(message string) (ret T, ok bool) {
	for _, c := range e.cases {
		if c.decoder.Match(message) {
			return c.value, true
		}
	}
	return
}

// Encode panics if value is not a declared case.
func (e *Enum[T]) Encode(value T) string {
	encoder, ok := e.byValue[value]
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrUnknownVariant, value))
	}
	return encoder.Encode(nil)
}
