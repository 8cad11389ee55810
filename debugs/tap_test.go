package debugs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/scpi/modes"
	"github.com/reusee/scpi/scpiconfigs"
)

func testScope(t *testing.T) dscope.Scope {
	return dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() scpiconfigs.SearchDirs {
			return scpiconfigs.SearchDirs{"testdata"}
		},
	)
}

func TestTap(t *testing.T) {
	testScope(t).Call(func(
		tap Tap,
	) {
		if err := tap(t.Context(), "test", map[string]any{
			"foo": 42,
		}); err != nil {
			t.Fatal(err)
		}
	})
}
