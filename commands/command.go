package commands

import (
	"fmt"
	"reflect"

	"github.com/reusee/scpi/params"
	"github.com/reusee/scpi/schemas"
)

// command binds compiled codecs to a Go type.
type command struct {
	typ      reflect.Type
	compiled *Compiled
	slots    []schemas.Slot
}

func newCommand(t reflect.Type, options Options) (*command, error) {
	if options.Command == "" {
		return nil, fmt.Errorf("%w for %v", ErrMissingCommand, t)
	}
	shape := schemas.ShapeOf(t)
	compiled, err := Compile(options.Command, shape, params.For)
	if err != nil {
		return nil, err
	}
	return &command{
		typ:      t,
		compiled: compiled,
		slots:    shape.Slots,
	}, nil
}

func (c *command) slot(v reflect.Value, slot schemas.Slot) reflect.Value {
	if c.typ.Kind() == reflect.Array {
		return v.Index(slot.Index[0])
	}
	return v.FieldByIndex(slot.Index)
}

func (c *command) decodeInto(message string, target reflect.Value) bool {
	values, ok := c.compiled.Decoder.Decode(message)
	if !ok {
		return false
	}
	for i, slot := range c.slots {
		if values[i] == nil {
			continue
		}
		c.slot(target, slot).Set(reflect.ValueOf(values[i]))
	}
	return true
}

func (c *command) encode(v reflect.Value) string {
	values := make([]any, len(c.slots))
	for i := range c.compiled.Decoder.Bound() {
		values[i] = c.slot(v, c.slots[i]).Interface()
	}
	return c.compiled.Encoder.Encode(values)
}

type Command[T any] struct {
	cmd *command
}

// New compiles the command of T, with options declared on T overwritten by opts.
func New[T any](opts ...Options) (*Command[T], error) {
	t := reflect.TypeFor[T]()
	declared, err := Declared(t)
	if err != nil {
		return nil, err
	}
	cmd, err := newCommand(t, declared.Apply(opts...))
	if err != nil {
		return nil, err
	}
	return &Command[T]{
		cmd: cmd,
	}, nil
}

func Must[T any](opts ...Options) *Command[T] {
	ret, err := New[T](opts...)
	if err != nil {
		panic(err)
	}
	return ret
}

func (c *Command[T]) Decode(message string) (ret T, ok bool) {
	var value T
	if !c.cmd.decodeInto(message, reflect.ValueOf(&value).Elem()) {
		return
	}
	return value, true
}

func (c *Command[T]) Encode(value T) string {
	return c.cmd.encode(reflect.ValueOf(&value).Elem())
}

func (c *Command[T]) Pattern() string {
	return c.cmd.compiled.Pattern
}

func (c *Command[T]) Fields() []schemas.Field {
	return c.cmd.compiled.Fields
}
