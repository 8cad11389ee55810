package decoders

import (
	"fmt"
	"strings"

	"github.com/reusee/scpi/patterns"
	"github.com/reusee/scpi/schemas"
)

// step consumes a prefix of input, storing parsed values into values.
type step func(input string, values []any) (rest string, ok bool)

type Decoder struct {
	steps    []step
	defaults []schemas.Field
	numBound int
	numField int
}

func Compile(tokens []patterns.Token, fields []schemas.Field) (*Decoder, error) {
	decoder := &Decoder{
		numField: len(fields),
	}

	next := 0
	for _, token := range tokens {
		switch token.Kind {

		case patterns.TokenRequired:
			decoder.steps = append(decoder.steps, required(token.Text))

		case patterns.TokenOptional:
			decoder.steps = append(decoder.steps, optional(token.Text))

		case patterns.TokenSpace:
			decoder.steps = append(decoder.steps, space)

		case patterns.TokenParameter:
			if next >= len(fields) {
				return nil, fmt.Errorf("%w: parameter %d at column %d, %d fields",
					schemas.ErrTooManyParameters, next+1, token.Pos+1, len(fields))
			}
			decoder.steps = append(decoder.steps, parameter(next, fields[next].Codec))
			next++

		default:
			return nil, fmt.Errorf("unexpected token %v", token.Kind)
		}
	}

	decoder.numBound = next
	decoder.defaults = fields[next:]

	return decoder, nil
}

func required(text string) step {
	return func(input string, _ []any) (string, bool) {
		return strings.CutPrefix(input, text)
	}
}

func optional(text string) step {
	return func(input string, _ []any) (string, bool) {
		rest, _ := strings.CutPrefix(input, text)
		return rest, true
	}
}

func space(input string, _ []any) (string, bool) {
	rest := strings.TrimLeft(input, " ")
	return rest, len(rest) < len(input)
}

func parameter(index int, codec schemas.Codec) step {
	return func(input string, values []any) (string, bool) {
		value, rest, ok := codec.Parse(input)
		if !ok {
			return input, false
		}
		values[index] = value
		return rest, true
	}
}

// Decode returns one value per field, or false if message is not this command.
func (d *Decoder) Decode(message string) ([]any, bool) {
	values := make([]any, d.numField)
	input := message
	for _, step := range d.steps {
		var ok bool
		input, ok = step(input, values)
		if !ok {
			return nil, false
		}
	}
	if input != "" {
		return nil, false
	}
	for i, field := range d.defaults {
		values[d.numBound+i] = field.Codec.Default()
	}
	return values, true
}

func (d *Decoder) Match(message string) bool {
	_, ok := d.Decode(message)
	return ok
}

// Bound returns the number of fields bound to parameters.
func (d *Decoder) Bound() int {
	return d.numBound
}
