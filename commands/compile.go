package commands

import (
	"fmt"

	"github.com/reusee/scpi/decoders"
	"github.com/reusee/scpi/encoders"
	"github.com/reusee/scpi/patterns"
	"github.com/reusee/scpi/schemas"
)

type Compiled struct {
	Pattern string
	Tokens  []patterns.Token
	Fields  []schemas.Field
	Decoder *decoders.Decoder
	Encoder *encoders.Encoder
}

// Compile tokenizes pattern and adapts shape once, then builds both codecs from the same tokens.
func Compile(pattern string, shape schemas.Shape, resolve schemas.Resolver) (*Compiled, error) {
	tokens, err := patterns.Tokenize(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", shape.Name, err)
	}
	fields, err := schemas.Adapt(shape, resolve)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", shape.Name, err)
	}
	decoder, err := decoders.Compile(tokens, fields)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", shape.Name, err)
	}
	encoder, err := encoders.Compile(tokens, fields)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", shape.Name, err)
	}
	return &Compiled{
		Pattern: pattern,
		Tokens:  tokens,
		Fields:  fields,
		Decoder: decoder,
		Encoder: encoder,
	}, nil
}
