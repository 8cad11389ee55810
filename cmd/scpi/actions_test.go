package main

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/scpi/catalogs"
	"github.com/reusee/scpi/modes"
	"github.com/reusee/scpi/nets"
	"github.com/reusee/scpi/scpiconfigs"
)

func testScope(t *testing.T) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() scpiconfigs.SearchDirs {
			return scpiconfigs.SearchDirs{"testdata"}
		},
	)
}

func runAction(t *testing.T, action Action) (string, error) {
	buf := new(strings.Builder)
	err := action(t.Context(), testScope(t), buf)
	return buf.String(), err
}

func TestNames(t *testing.T) {
	out, err := runAction(t, namesAction)
	if err != nil {
		t.Fatal(err)
	}
	if out != "measure\tMEAS:VOLT[:DC]? <channel>\napply\tAPPL:SIN {},{}\n" {
		t.Fatalf("got %q", out)
	}
}

func TestEncodeDecode(t *testing.T) {
	*arguments = []string{"1000", "2.5"}
	defer func() {
		*arguments = nil
	}()
	out, err := runAction(t, encodeAction("apply"))
	if err != nil {
		t.Fatal(err)
	}
	if out != "APPL:SIN 1000,2.5\n" {
		t.Fatalf("got %q", out)
	}

	*arguments = []string{"1000"}
	_, err = runAction(t, encodeAction("apply"))
	if !errors.Is(err, catalogs.ErrBadArgument) {
		t.Fatalf("got %v", err)
	}

	out, err = runAction(t, decodeAction("APPL:SIN 1,2"))
	if err != nil {
		t.Fatal(err)
	}
	if out != "apply frequency=1 amplitude=2 offset=0\n" {
		t.Fatalf("got %q", out)
	}

	_, err = runAction(t, decodeAction("APPL:SIN 1"))
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("got %v", err)
	}
}

func TestQuery(t *testing.T) {
	testScope(t).Call(func(
		serve nets.Serve,
	) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatal(err)
		}
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		go serve(ctx, listener, func(ctx context.Context, line string) string {
			if line == "MEAS:VOLT? 1" {
				return "+1.5E+00"
			}
			return ""
		})
		addr := listener.Addr().String()

		out, err := runAction(t, sendAction(addr, "MEAS:VOLT? 1", true))
		if err != nil {
			t.Fatal(err)
		}
		if out != "+1.5E+00\n" {
			t.Fatalf("got %q", out)
		}
		if _, err := runAction(t, sendAction(addr, "*RST", false)); err != nil {
			t.Fatal(err)
		}
	})

	// configured instrument name
	_, err := runAction(t, sendAction("dmm", "*RST", false))
	if err == nil || !strings.Contains(err.Error(), "127.0.0.1:1") {
		t.Fatalf("got %v", err)
	}
}

func TestRun(t *testing.T) {
	if _, err := runAction(t, runScriptAction("testdata/script.star")); err != nil {
		t.Fatal(err)
	}
	if _, err := runAction(t, runScriptAction("testdata/not-exists.star")); err == nil {
		t.Fatal("should fail")
	}
}

func TestSetAction(t *testing.T) {
	defer func() {
		action = nil
	}()
	setAction(namesAction)
	func() {
		defer func() {
			if p := recover(); p == nil {
				t.Fatal("should panic")
			}
		}()
		setAction(replAction)
	}()
}
