package catalogs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/reusee/scpi/commands"
	"github.com/reusee/scpi/params"
	"github.com/reusee/scpi/schemas"
)

var (
	ErrDuplicateName  = errors.New("duplicate command name")
	ErrUnknownType    = errors.New("unknown field type")
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgument    = errors.New("bad argument")
)

type Catalog struct {
	entries []*Entry
	byName  map[string]*Entry
}

type Entry struct {
	// Name is "group.variant" for group variants
	Name     string
	compiled *commands.Compiled
	types    []fieldType
}

func (e *Entry) Pattern() string {
	return e.compiled.Pattern
}

func (e *Entry) Fields() []schemas.Field {
	return e.compiled.Fields
}

// Bound is the number of fields bound to parameters
func (e *Entry) Bound() int {
	return e.compiled.Decoder.Bound()
}

func Build(spec Spec) (*Catalog, error) {
	catalog := &Catalog{
		byName: make(map[string]*Entry),
	}

	for _, cmd := range spec.Commands {
		if err := catalog.add(cmd.Name, commands.WithCommand(cmd.Command), cmd.Fields); err != nil {
			return nil, err
		}
	}

	for _, group := range spec.Groups {
		base := commands.WithCommand(group.Command)
		for _, variant := range group.Variants {
			name := group.Name + "." + variant.Name
			options := base.Apply(commands.WithCommand(variant.Command))
			if err := catalog.add(name, options, variant.Fields); err != nil {
				return nil, err
			}
		}
	}

	return catalog, nil
}

func (c *Catalog) add(name string, options commands.Options, fieldSpecs []FieldSpec) error {
	if _, ok := c.byName[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	if options.Command == "" {
		return fmt.Errorf("%w: %s", commands.ErrMissingCommand, name)
	}

	shape := schemas.Shape{
		Kind: schemas.ShapeUnit,
		Name: name,
	}
	var types []fieldType
	for i, spec := range fieldSpecs {
		typ, err := typeOf(spec)
		if err != nil {
			return fmt.Errorf("%s: field %d: %w", name, i, err)
		}
		types = append(types, typ)
		shape.Kind = schemas.ShapeRecord
		shape.Slots = append(shape.Slots, schemas.Slot{
			Name:  spec.Name,
			Type:  typ.goType,
			Codec: typ.codec,
		})
	}

	compiled, err := commands.Compile(options.Command, shape, params.For)
	if err != nil {
		return err
	}

	entry := &Entry{
		Name:     name,
		compiled: compiled,
		types:    types,
	}
	c.entries = append(c.entries, entry)
	c.byName[name] = entry
	return nil
}

func (c *Catalog) Names() []string {
	ret := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		ret = append(ret, entry.Name)
	}
	return ret
}

func (c *Catalog) Lookup(name string) (*Entry, bool) {
	entry, ok := c.byName[name]
	return entry, ok
}

type Match struct {
	Entry  *Entry
	Values []any
}

func (m Match) String() string {
	var b strings.Builder
	b.WriteString(m.Entry.Name)
	for i, field := range m.Entry.Fields() {
		b.WriteString(" ")
		b.WriteString(field.Label())
		b.WriteString("=")
		b.WriteString(field.Codec.Format(m.Values[i]))
	}
	return b.String()
}

// Decode tries entries in declaration order, the first match wins.
func (c *Catalog) Decode(message string) (Match, bool) {
	for _, entry := range c.entries {
		values, ok := entry.compiled.Decoder.Decode(message)
		if ok {
			return Match{
				Entry:  entry,
				Values: values,
			}, true
		}
	}
	return Match{}, false
}

// Encode renders the named command. Values of unbound fields may be omitted.
func (c *Catalog) Encode(name string, values []any) (string, error) {
	entry, ok := c.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	fields := entry.Fields()
	if len(values) < entry.Bound() || len(values) > len(fields) {
		return "", fmt.Errorf("%w: %s expects %d to %d values, got %d",
			ErrBadArgument, name, entry.Bound(), len(fields), len(values))
	}
	converted := make([]any, len(fields))
	for i, field := range fields {
		if i >= len(values) {
			converted[i] = field.Codec.Default()
			continue
		}
		v, err := entry.types[i].convert(values[i])
		if err != nil {
			return "", fmt.Errorf("%w: %s: %s: %w", ErrBadArgument, name, field.Label(), err)
		}
		converted[i] = v
	}
	return entry.compiled.Encoder.Encode(converted), nil
}

// EncodeArgs parses one argument per bound field, in the parameter syntax.
func (c *Catalog) EncodeArgs(name string, args []string) (string, error) {
	entry, ok := c.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if len(args) != entry.Bound() {
		return "", fmt.Errorf("%w: %s expects %d arguments, got %d",
			ErrBadArgument, name, entry.Bound(), len(args))
	}
	values := make([]any, 0, len(args))
	for i, arg := range args {
		field := entry.Fields()[i]
		v, ok := params.ParseAll(field.Codec, arg)
		if !ok {
			return "", fmt.Errorf("%w: %s: %s: %q", ErrBadArgument, name, field.Label(), arg)
		}
		values = append(values, v)
	}
	return c.Encode(name, values)
}

type fieldType struct {
	goType reflect.Type
	codec  schemas.Codec
	tokens params.Tokens
}

var (
	int64Type    = reflect.TypeFor[int64]()
	uint64Type   = reflect.TypeFor[uint64]()
	float64Type  = reflect.TypeFor[float64]()
	boolType     = reflect.TypeFor[bool]()
	stringType   = reflect.TypeFor[string]()
	mnemonicType = reflect.TypeFor[params.Mnemonic]()
)

func typeOf(spec FieldSpec) (ret fieldType, err error) {
	switch spec.Type {
	case "int":
		ret.goType = int64Type
	case "uint":
		ret.goType = uint64Type
	case "float":
		ret.goType = float64Type
	case "bool":
		ret.goType = boolType
	case "string":
		ret.goType = stringType
	case "mnemonic":
		ret.goType = mnemonicType
	case "enum":
		if len(spec.Tokens) == 0 {
			return ret, fmt.Errorf("%w: enum without tokens", ErrUnknownType)
		}
		ret.goType = stringType
		ret.tokens = params.Tokens(spec.Tokens)
		ret.codec = ret.tokens.Codec()
		return ret, nil
	default:
		return ret, fmt.Errorf("%w: %q", ErrUnknownType, spec.Type)
	}
	ret.codec, err = params.For(ret.goType)
	return
}

// convert accepts values of any Go type of the same kind family
func (f fieldType) convert(value any) (any, error) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return nil, fmt.Errorf("nil value")
	}
	if v.Type() == f.goType && f.tokens == nil && f.goType != mnemonicType {
		return value, nil
	}

	switch f.goType.Kind() {

	case reflect.Int64:
		switch {
		case v.CanInt():
			return v.Int(), nil
		case v.CanUint() && v.Uint() <= 1<<63-1:
			return int64(v.Uint()), nil
		}

	case reflect.Uint64:
		switch {
		case v.CanUint():
			return v.Uint(), nil
		case v.CanInt() && v.Int() >= 0:
			return uint64(v.Int()), nil
		}

	case reflect.Float64:
		switch {
		case v.CanFloat():
			return v.Float(), nil
		case v.CanInt():
			return float64(v.Int()), nil
		case v.CanUint():
			return float64(v.Uint()), nil
		}

	case reflect.Bool:
		if v.Kind() == reflect.Bool {
			return v.Bool(), nil
		}

	case reflect.String:
		if v.Kind() == reflect.String {
			str := v.String()
			if f.tokens != nil {
				i, rest, ok := f.tokens.Match(str)
				if !ok || rest != "" {
					return nil, fmt.Errorf("%q not in %v", str, []string(f.tokens))
				}
				return f.tokens.Format(i), nil
			}
			if f.goType == mnemonicType {
				var m params.Mnemonic
				if rest, ok := m.ParseSCPI(str); !ok || rest != "" {
					return nil, fmt.Errorf("%q is not a mnemonic", str)
				}
				return m, nil
			}
			return reflect.ValueOf(str).Convert(f.goType).Interface(), nil
		}

	}

	return nil, fmt.Errorf("cannot use %T as %v", value, f.goType)
}
