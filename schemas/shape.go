package schemas

import (
	"reflect"
	"strings"
)

type ShapeKind uint8

const (
	ShapeInvalid ShapeKind = iota
	ShapeUnit
	ShapeTuple
	ShapeRecord
	ShapeUnion
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeUnit:
		return "unit"
	case ShapeTuple:
		return "tuple"
	case ShapeRecord:
		return "record"
	case ShapeUnion:
		return "union"
	}
	return "invalid"
}

type Shape struct {
	Kind  ShapeKind
	Name  string
	Slots []Slot
}

type Slot struct {
	Name string
	Type reflect.Type
	// Codec overrides the resolved codec when not nil
	Codec Codec
	// Index locates the slot in a struct (reflect.Value.FieldByIndex) or an array
	Index []int
}

func ShapeOf(t reflect.Type) Shape {
	shape := Shape{
		Name: t.String(),
	}

	switch t.Kind() {

	case reflect.Struct:
		for i := range t.NumField() {
			field := t.Field(i)
			if field.Name == "_" || !field.IsExported() {
				continue
			}
			tag := field.Tag.Get("scpi")
			if tag == "-" {
				continue
			}
			name := field.Name
			if v, ok := strings.CutPrefix(tag, "name="); ok && v != "" {
				name = v
			}
			shape.Slots = append(shape.Slots, Slot{
				Name:  name,
				Type:  field.Type,
				Index: field.Index,
			})
		}
		if len(shape.Slots) == 0 {
			shape.Kind = ShapeUnit
		} else {
			shape.Kind = ShapeRecord
		}

	case reflect.Array:
		shape.Kind = ShapeTuple
		if t.Len() == 0 {
			shape.Kind = ShapeUnit
		}
		for i := range t.Len() {
			shape.Slots = append(shape.Slots, Slot{
				Type:  t.Elem(),
				Index: []int{i},
			})
		}

	case reflect.Interface:
		shape.Kind = ShapeUnion

	}

	return shape
}
