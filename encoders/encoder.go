package encoders

import (
	"fmt"
	"strings"

	"github.com/reusee/scpi/patterns"
	"github.com/reusee/scpi/schemas"
)

type segment struct {
	literal string
	// slot is the field index, -1 for literals
	slot  int
	codec schemas.Codec
}

type Encoder struct {
	segments []segment
	size     int
}

func Compile(tokens []patterns.Token, fields []schemas.Field) (*Encoder, error) {
	encoder := new(Encoder)
	var literal strings.Builder
	flush := func() {
		if literal.Len() == 0 {
			return
		}
		encoder.segments = append(encoder.segments, segment{
			literal: literal.String(),
			slot:    -1,
		})
		encoder.size += literal.Len()
		literal.Reset()
	}

	next := 0
	for _, token := range tokens {
		switch token.Kind {

		case patterns.TokenRequired, patterns.TokenOptional:
			literal.WriteString(token.Text)

		case patterns.TokenSpace:
			literal.WriteByte(' ')

		case patterns.TokenParameter:
			if next >= len(fields) {
				return nil, fmt.Errorf("%w: parameter %d at column %d, %d fields",
					schemas.ErrTooManyParameters, next+1, token.Pos+1, len(fields))
			}
			flush()
			encoder.segments = append(encoder.segments, segment{
				slot:  next,
				codec: fields[next].Codec,
			})
			next++

		default:
			return nil, fmt.Errorf("unexpected token %v", token.Kind)
		}
	}
	flush()

	return encoder, nil
}

// Encode renders values, one per field. Values of unbound fields are not read.
func (e *Encoder) Encode(values []any) string {
	var b strings.Builder
	b.Grow(e.size + 8*len(e.segments))
	for _, seg := range e.segments {
		if seg.slot < 0 {
			b.WriteString(seg.literal)
		} else {
			b.WriteString(seg.codec.Format(values[seg.slot]))
		}
	}
	return b.String()
}

func (e *Encoder) Append(buf []byte, values []any) []byte {
	for _, seg := range e.segments {
		if seg.slot < 0 {
			buf = append(buf, seg.literal...)
		} else {
			buf = append(buf, seg.codec.Format(values[seg.slot])...)
		}
	}
	return buf
}
