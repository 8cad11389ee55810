package commands

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/reusee/scpi/schemas"
)

type SourceCommand interface {
	sourceCommand()
}

type SetVoltage struct {
	_     struct{} `scpi:"command=[SOUR:]VOLT {}"`
	Level float64
}

type SetCurrent struct {
	_     struct{} `scpi:"command=[SOUR:]CURR {}"`
	Level float64
}

// no declared command, inherits the group command
type SetDefault struct{}

type SetOutput struct {
	On bool
}

func (SetVoltage) sourceCommand() {}
func (SetCurrent) sourceCommand() {}
func (SetDefault) sourceCommand() {}
func (SetOutput) sourceCommand()  {}

func newSourceCommands(t *testing.T) *Variants[SourceCommand] {
	variants, err := NewVariants[SourceCommand](
		WithCommand("SOUR:DEF"),
		Case[SetVoltage](),
		Case[SetCurrent](),
		Case[SetDefault](),
		Case[SetOutput](WithCommand("OUTP {}")),
	)
	if err != nil {
		t.Fatal(err)
	}
	return variants
}

func TestVariants(t *testing.T) {
	variants := newSourceCommands(t)

	testCases := []struct {
		message  string
		expected SourceCommand
	}{
		{"SOUR:VOLT 1.5", SetVoltage{Level: 1.5}},
		{"VOLT 2", SetVoltage{Level: 2}},
		{"CURR 0.1", SetCurrent{Level: 0.1}},
		{"SOUR:DEF", SetDefault{}},
		{"OUTP ON", SetOutput{On: true}},
	}
	for _, c := range testCases {
		v, ok := variants.Decode(c.message)
		if !ok {
			t.Fatalf("%s: not ok", c.message)
		}
		if v != c.expected {
			t.Fatalf("%s: got %#v", c.message, v)
		}
		message := variants.Encode(v)
		again, ok := variants.Decode(message)
		if !ok || again != v {
			t.Fatalf("%s: got %#v", message, again)
		}
	}

	if _, ok := variants.Decode("SOUR:FREQ 1"); ok {
		t.Fatal()
	}

	if str := variants.Encode(SetCurrent{Level: 3}); str != "SOUR:CURR 3" {
		t.Fatalf("got %s", str)
	}

	if str := fmt.Sprint(variants.Patterns()); str != "[[SOUR:]VOLT {} [SOUR:]CURR {} SOUR:DEF OUTP {}]" {
		t.Fatalf("got %s", str)
	}
}

type Unregistered struct{}

func (Unregistered) sourceCommand() {}

func TestVariantsEncodeUnknown(t *testing.T) {
	variants := newSourceCommands(t)
	func() {
		defer func() {
			p := recover()
			if p == nil {
				t.Fatal("should panic")
			}
			if !errors.Is(p.(error), ErrUnknownVariant) {
				t.Fatalf("got %v", p)
			}
		}()
		variants.Encode(Unregistered{})
	}()
	func() {
		defer func() {
			if p := recover(); p == nil {
				t.Fatal("should panic")
			}
		}()
		variants.Encode(nil)
	}()
}

func TestVariantsErrors(t *testing.T) {
	_, err := NewVariants[SourceCommand](Options{}, Case[SetDefault]())
	if !errors.Is(err, ErrMissingCommand) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "SetDefault") {
		t.Fatalf("got %v", err)
	}

	_, err = NewVariants[SourceCommand](Options{}, Case[Reset]())
	if !errors.Is(err, ErrNotVariant) {
		t.Fatalf("got %v", err)
	}

	_, err = NewVariants[SourceCommand](Options{}, Case[SetVoltage](), Case[SetVoltage]())
	if !errors.Is(err, ErrDuplicateVariant) {
		t.Fatalf("got %v", err)
	}

	// the group command has a parameter, SetDefault has no field for it
	_, err = NewVariants[SourceCommand](WithCommand("SOUR {}"), Case[SetDefault]())
	if !errors.Is(err, schemas.ErrTooManyParameters) {
		t.Fatalf("got %v", err)
	}
}

type Coupling int

const (
	CouplingAC Coupling = iota
	CouplingDC
	CouplingGround
)

func TestEnum(t *testing.T) {
	enum, err := NewEnum(
		WithCommand("INP:COUP GND"),
		EnumValue(CouplingAC, WithCommand("INP:COUP AC")),
		EnumValue(CouplingDC, WithCommand("INP[:COUP] DC")),
		EnumValue(CouplingGround),
	)
	if err != nil {
		t.Fatal(err)
	}

	for message, expected := range map[string]Coupling{
		"INP:COUP AC":   CouplingAC,
		"INP:COUP   DC": CouplingDC,
		"INP DC":        CouplingDC,
		"INP:COUP GND":  CouplingGround,
	} {
		v, ok := enum.Decode(message)
		if !ok {
			t.Fatalf("%s: not ok", message)
		}
		if v != expected {
			t.Fatalf("%s: got %v", message, v)
		}
	}
	if _, ok := enum.Decode("INP:COUP DC2"); ok {
		t.Fatal()
	}

	if str := enum.Encode(CouplingDC); str != "INP:COUP DC" {
		t.Fatalf("got %s", str)
	}
	if str := enum.Encode(CouplingGround); str != "INP:COUP GND" {
		t.Fatalf("got %s", str)
	}

	func() {
		defer func() {
			if p := recover(); p == nil {
				t.Fatal("should panic")
			}
		}()
		enum.Encode(Coupling(42))
	}()
}

func TestEnumErrors(t *testing.T) {
	_, err := NewEnum(Options{}, EnumValue(CouplingAC))
	if !errors.Is(err, ErrMissingCommand) {
		t.Fatalf("got %v", err)
	}
	_, err = NewEnum(Options{}, EnumValue(CouplingAC, WithCommand("INP:COUP {}")))
	if !errors.Is(err, schemas.ErrTooManyParameters) {
		t.Fatalf("got %v", err)
	}
	_, err = NewEnum(WithCommand("X"), EnumValue(CouplingAC), EnumValue(CouplingAC))
	if !errors.Is(err, ErrDuplicateVariant) {
		t.Fatalf("got %v", err)
	}
}

func TestRouter(t *testing.T) {
	router := new(Router)
	var reset int
	Route[Reset](router, Must[Reset](), func(Reset) string {
		reset++
		return ""
	})
	Route[MeasureVoltage](router, Must[MeasureVoltage](), func(m MeasureVoltage) string {
		return fmt.Sprintf("%d.5", m.Channel)
	})
	Route[SourceCommand](router, newSourceCommands(t), func(c SourceCommand) string {
		return fmt.Sprintf("%T", c)
	})

	reply, ok := router.Dispatch("MEAS:VOLT? 2")
	if !ok || reply != "2.5" {
		t.Fatalf("got %q %v", reply, ok)
	}
	reply, ok = router.Dispatch("VOLT 1")
	if !ok || reply != "commands.SetVoltage" {
		t.Fatalf("got %q %v", reply, ok)
	}
	if _, ok := router.Dispatch("*RST"); !ok || reset != 1 {
		t.Fatal()
	}
	if _, ok := router.Dispatch("*CLS"); ok {
		t.Fatal()
	}
}
