package configs

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"testing"
)

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)
	if str := First[string](loader, "str"); str != "bar" {
		t.Fatalf("got %v", str)
	}
	if str := First[string](loader, "not"); str != "" {
		t.Fatalf("got %v", str)
	}
}

func TestFirstBadValue(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)
	func() {
		defer func() {
			p := recover()
			if p == nil || !strings.Contains(fmt.Sprint(p), "config str") {
				t.Fatalf("got %v", p)
			}
		}()
		First[int](loader, "str")
	}()
}

func TestMerged(t *testing.T) {
	loader := NewSourceLoader(func() ([]Source, error) {
		return []Source{
			{Name: "a.yaml", Content: []byte("instruments:\n  psu: 10.0.0.1\n")},
			{Name: "b.cue", Content: []byte(`instruments: {psu: "10.0.0.2", dmm: "10.0.0.3"}`)},
		}, nil
	}, "instruments?: [string]: string")
	m := Merged[string, string](loader, "instruments")
	if str := fmt.Sprint(slices.Sorted(maps.Keys(m))); str != "[dmm psu]" {
		t.Fatalf("got %s", str)
	}
	if m["psu"] != "10.0.0.1" || m["dmm"] != "10.0.0.3" {
		t.Fatalf("got %v", m)
	}

	if m := Merged[string, string](loader, "none"); len(m) != 0 {
		t.Fatalf("got %v", m)
	}
}
