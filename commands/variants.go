package commands

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNotVariant       = errors.New("not a variant")
	ErrDuplicateVariant = errors.New("duplicate variant")
	ErrUnknownVariant   = errors.New("unknown variant")
)

type Variant struct {
	typ     reflect.Type
	options []Options
}

func Case[T any](opts ...Options) Variant {
	return Variant{
		typ:     reflect.TypeFor[T](),
		options: opts,
	}
}

// Variants is a group of command types sharing the interface I.
// Each case resolves its command from the group options, then the options
// declared on the case type, then the options given to Case.
type Variants[I any] struct {
	cases  []*command
	byType map[reflect.Type]*command
}

func NewVariants[I any](base Options, variants ...Variant) (*Variants[I], error) {
	group := reflect.TypeFor[I]()
	ret := &Variants[I]{
		byType: make(map[reflect.Type]*command),
	}

	for _, variant := range variants {
		if !variant.typ.AssignableTo(group) {
			return nil, fmt.Errorf("%w: %v is not %v", ErrNotVariant, variant.typ, group)
		}
		if _, ok := ret.byType[variant.typ]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateVariant, variant.typ)
		}
		declared, err := Declared(variant.typ)
		if err != nil {
			return nil, err
		}
		options := base.Apply(declared).Apply(variant.options...)
		cmd, err := newCommand(variant.typ, options)
		if err != nil {
			return nil, fmt.Errorf("variant %v of %v: %w", variant.typ, group, err)
		}
		ret.cases = append(ret.cases, cmd)
		ret.byType[variant.typ] = cmd
	}

	return ret, nil
}

func MustVariants[I any](base Options, variants ...Variant) *Variants[I] {
	ret, err := NewVariants[I](base, variants...)
	if err != nil {
		panic(err)
	}
	return ret
}

// Decode tries cases in declaration order.
func (v *Variants[I]) Decode(message string) (ret I, ok bool) {
	for _, cmd := range v.cases {
		target := reflect.New(cmd.typ).Elem()
		if cmd.decodeInto(message, target) {
			return target.Interface().(I), true
		}
	}
	return
}

// Encode panics if the dynamic type of value is not a registered case.
func (v *Variants[I]) Encode(value I) string {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		panic(fmt.Errorf("%w: nil", ErrUnknownVariant))
	}
	cmd, ok := v.byType[rv.Type()]
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrUnknownVariant, rv.Type()))
	}
	return cmd.encode(rv)
}

func (v *Variants[I]) Patterns() []string {
	ret := make([]string, 0, len(v.cases))
	for _, cmd := range v.cases {
		ret = append(ret, cmd.compiled.Pattern)
	}
	return ret
}
