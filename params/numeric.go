package params

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func scanSign(input string, i int) int {
	if i < len(input) && (input[i] == '+' || input[i] == '-') {
		return i + 1
	}
	return i
}

func scanDigits(input string, i int) int {
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	return i
}

// scanInteger returns the length of the leading [+-]?digits, or 0.
func scanInteger(input string) int {
	start := scanSign(input, 0)
	end := scanDigits(input, start)
	if end == start {
		return 0
	}
	return end
}

// scanDecimal returns the length of the leading SCPI decimal numeric literal, or 0.
func scanDecimal(input string) int {
	start := scanSign(input, 0)
	i := scanDigits(input, start)
	digits := i - start
	if i < len(input) && input[i] == '.' {
		end := scanDigits(input, i+1)
		if digits+end-i-1 > 0 {
			digits += end - i - 1
			i = end
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		expStart := scanSign(input, i+1)
		expEnd := scanDigits(input, expStart)
		if expEnd > expStart {
			i = expEnd
		}
	}
	return i
}

type intCodec struct {
	typ reflect.Type
}

func (c intCodec) Parse(input string) (any, string, bool) {
	n := scanInteger(input)
	if n == 0 {
		return nil, input, false
	}
	v, err := strconv.ParseInt(input[:n], 10, c.typ.Bits())
	if err != nil {
		return nil, input, false
	}
	return reflect.ValueOf(v).Convert(c.typ).Interface(), input[n:], true
}

func (c intCodec) Format(value any) string {
	return strconv.FormatInt(reflect.ValueOf(value).Int(), 10)
}

func (c intCodec) Default() any {
	return reflect.Zero(c.typ).Interface()
}

type uintCodec struct {
	typ reflect.Type
}

func (c uintCodec) Parse(input string) (any, string, bool) {
	n := scanInteger(input)
	if n == 0 || input[0] == '-' {
		return nil, input, false
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(input[:n], "+"), 10, c.typ.Bits())
	if err != nil {
		return nil, input, false
	}
	return reflect.ValueOf(v).Convert(c.typ).Interface(), input[n:], true
}

func (c uintCodec) Format(value any) string {
	return strconv.FormatUint(reflect.ValueOf(value).Uint(), 10)
}

func (c uintCodec) Default() any {
	return reflect.Zero(c.typ).Interface()
}

type floatCodec struct {
	typ reflect.Type
}

var specialFloats = []struct {
	word  string
	value float64
}{
	{"NINF", math.Inf(-1)},
	{"INF", math.Inf(1)},
	{"NAN", math.NaN()},
}

func (c floatCodec) Parse(input string) (any, string, bool) {
	n := scanDecimal(input)
	if n == 0 {
		for _, special := range specialFloats {
			if len(input) >= len(special.word) &&
				strings.EqualFold(input[:len(special.word)], special.word) {
				return reflect.ValueOf(special.value).Convert(c.typ).Interface(), input[len(special.word):], true
			}
		}
		return nil, input, false
	}
	v, err := strconv.ParseFloat(input[:n], c.typ.Bits())
	if err != nil {
		return nil, input, false
	}
	return reflect.ValueOf(v).Convert(c.typ).Interface(), input[n:], true
}

func (c floatCodec) Format(value any) string {
	v := reflect.ValueOf(value).Float()
	switch {
	case math.IsNaN(v):
		return "NAN"
	case math.IsInf(v, 1):
		return "INF"
	case math.IsInf(v, -1):
		return "NINF"
	}
	return strconv.FormatFloat(v, 'g', -1, c.typ.Bits())
}

func (c floatCodec) Default() any {
	return reflect.Zero(c.typ).Interface()
}
