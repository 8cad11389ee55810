package commands

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrInvalidOption  = errors.New("invalid scpi option")
	ErrMissingCommand = errors.New("missing scpi command")
)

// Options are layered: later non-empty values overwrite earlier ones.
type Options struct {
	Command string
}

func WithCommand(pattern string) Options {
	return Options{
		Command: pattern,
	}
}

func (o Options) Apply(overrides ...Options) Options {
	for _, override := range overrides {
		if override.Command != "" {
			o.Command = override.Command
		}
	}
	return o
}

// Declared reads options from blank marker fields:
//
//	type MeasureVoltage struct {
//		_       struct{} `scpi:"command=MEAS:VOLT[:DC]? <channel>"`
//		Channel int
//	}
func Declared(t reflect.Type) (ret Options, err error) {
	if t.Kind() != reflect.Struct {
		return
	}
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Name != "_" {
			continue
		}
		tag, ok := field.Tag.Lookup("scpi")
		if !ok {
			continue
		}
		key, value, ok := strings.Cut(tag, "=")
		if !ok {
			return ret, fmt.Errorf("%w in %v: %q", ErrInvalidOption, t, tag)
		}
		switch strings.TrimSpace(key) {
		case "command":
			ret.Command = value
		default:
			return ret, fmt.Errorf("%w in %v: %q", ErrInvalidOption, t, key)
		}
	}
	return
}
