package schemas

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedShape  = errors.New("unsupported shape")
	ErrNoCodec           = errors.New("no codec")
	ErrTooManyParameters = errors.New("more parameters than fields")
)

// Adapt normalizes a shape into ordered field descriptors.
func Adapt(shape Shape, resolve Resolver) ([]Field, error) {
	switch shape.Kind {
	case ShapeUnit:
		return []Field{}, nil
	case ShapeTuple, ShapeRecord:
	default:
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedShape, shape.Name, shape.Kind)
	}

	fields := make([]Field, 0, len(shape.Slots))
	for i, slot := range shape.Slots {
		field := Field{
			Index: i,
			Codec: slot.Codec,
		}
		if shape.Kind == ShapeRecord {
			field.Name = slot.Name
		}

		if field.Codec == nil {
			if resolve == nil || slot.Type == nil {
				return nil, fmt.Errorf("%s field %s: %w", shape.Name, field.Label(), ErrNoCodec)
			}
			codec, err := resolve(slot.Type)
			if err != nil {
				return nil, fmt.Errorf("%s field %s: %w", shape.Name, field.Label(), err)
			}
			field.Codec = codec
		}

		fields = append(fields, field)
	}

	return fields, nil
}
