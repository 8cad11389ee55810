package decoders

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/reusee/scpi/params"
	"github.com/reusee/scpi/patterns"
	"github.com/reusee/scpi/schemas"
)

func compile(t *testing.T, pattern string, types ...reflect.Type) *Decoder {
	tokens, err := patterns.Tokenize(pattern)
	if err != nil {
		t.Fatal(err)
	}
	var fields []schemas.Field
	for i, typ := range types {
		codec, err := params.For(typ)
		if err != nil {
			t.Fatal(err)
		}
		fields = append(fields, schemas.Field{
			Index: i,
			Codec: codec,
		})
	}
	decoder, err := Compile(tokens, fields)
	if err != nil {
		t.Fatal(err)
	}
	return decoder
}

var intType = reflect.TypeFor[int]()

func TestDecode(t *testing.T) {
	decoder := compile(t, "MEAS:VOLT[:DC]? <channel>", intType)

	testCases := []struct {
		message string
		ok      bool
		value   int
	}{
		{"MEAS:VOLT:DC? 3", true, 3},
		{"MEAS:VOLT? 3", true, 3},
		{"MEAS:VOLT:DC?    3", true, 3},
		{"MEAS:VOLT:DC?3", false, 0},
		{"MEAS:VOLT:D? 3", false, 0},
		{"MEAS:VOLT:DC? 3 ", false, 0},
		{"MEAS:VOLT:DC? 3x", false, 0},
		{"MEAS:VOLT:DC? x", false, 0},
		{"MEAS:VOLT:DC? ", false, 0},
		{"MEAS:VOLT:DC?", false, 0},
		{"MEAS:CURR:DC? 3", false, 0},
		{"meas:volt:dc? 3", false, 0},
		{"", false, 0},
	}
	for _, c := range testCases {
		values, ok := decoder.Decode(c.message)
		if ok != c.ok {
			t.Fatalf("%q: got %v", c.message, ok)
		}
		if !ok {
			if values != nil {
				t.Fatalf("%q: partial result %v", c.message, values)
			}
			continue
		}
		if values[0] != c.value {
			t.Fatalf("%q: got %v", c.message, values)
		}
	}
}

func TestDecodeLiteralExactness(t *testing.T) {
	decoder := compile(t, "*RST")
	if !decoder.Match("*RST") {
		t.Fatal()
	}
	message := "SYST:ERR?"
	decoder = compile(t, message)
	for i := range len(message) {
		mutated := []byte(message)
		mutated[i] = 'x'
		if decoder.Match(string(mutated)) {
			t.Fatalf("%s should not match", mutated)
		}
	}
	for _, residue := range []string{" ", "x", ";", "\n"} {
		if decoder.Match(message + residue) {
			t.Fatalf("%q should not match", message+residue)
		}
	}
}

func TestDecodeDefaults(t *testing.T) {
	decoder := compile(t, "SOUR:VOLT {}", reflect.TypeFor[float64](), intType, reflect.TypeFor[string]())
	if decoder.Bound() != 1 {
		t.Fatalf("got %d", decoder.Bound())
	}
	values, ok := decoder.Decode("SOUR:VOLT 1.5")
	if !ok {
		t.Fatal()
	}
	if str := fmt.Sprintf("%#v", values); str != `[]interface {}{1.5, 0, ""}` {
		t.Fatalf("got %s", str)
	}
}

func TestDecodeMultipleParameters(t *testing.T) {
	decoder := compile(t, "APPL:SIN {},{},{}", reflect.TypeFor[float64](), reflect.TypeFor[float64](), reflect.TypeFor[float64]())
	values, ok := decoder.Decode("APPL:SIN 1000,2.5,0.1")
	if !ok {
		t.Fatal()
	}
	if str := fmt.Sprint(values); str != "[1000 2.5 0.1]" {
		t.Fatalf("got %s", str)
	}
}

func TestDecodeOptionalThenParameter(t *testing.T) {
	decoder := compile(t, "OUTP[:STAT] {}", reflect.TypeFor[bool]())
	for message, expected := range map[string]bool{
		"OUTP ON":       true,
		"OUTP:STAT OFF": false,
		"OUTP:STAT 1":   true,
	} {
		values, ok := decoder.Decode(message)
		if !ok {
			t.Fatalf("%s: not ok", message)
		}
		if values[0] != expected {
			t.Fatalf("%s: got %v", message, values)
		}
	}
	if decoder.Match("OUTP:STA ON") {
		t.Fatal()
	}
}

func TestDecodeOptionalNoBacktracking(t *testing.T) {
	decoder := compile(t, "A[B]BC")
	for message, expected := range map[string]bool{
		"ABBC": true,
		"ABC":  false,
		"AC":   false,
	} {
		if ok := decoder.Match(message); ok != expected {
			t.Fatalf("%s: got %v", message, ok)
		}
	}
}

func TestCompileTooManyParameters(t *testing.T) {
	tokens, err := patterns.Tokenize("APPL {},{}")
	if err != nil {
		t.Fatal(err)
	}
	codec, err := params.For(intType)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Compile(tokens, []schemas.Field{{Codec: codec}})
	if !errors.Is(err, schemas.ErrTooManyParameters) {
		t.Fatalf("got %v", err)
	}
	_, err = Compile(tokens, nil)
	if !errors.Is(err, schemas.ErrTooManyParameters) {
		t.Fatalf("got %v", err)
	}
}

func TestDecodeConcurrent(t *testing.T) {
	decoder := compile(t, "CH{}:SCAL {}", intType, reflect.TypeFor[float64]())
	wg := new(sync.WaitGroup)
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				values, ok := decoder.Decode(fmt.Sprintf("CH%d:SCAL %d.5", i, j))
				if !ok {
					t.Error("not ok")
					return
				}
				if values[0] != i || values[1] != float64(j)+0.5 {
					t.Errorf("got %v", values)
					return
				}
			}
		}()
	}
	wg.Wait()
}
